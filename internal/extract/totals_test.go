package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseTotals", func() {
	var (
		text   string
		totals Totals
	)

	JustBeforeEach(func() {
		totals = ParseTotals(text)
	})

	When("parsing a complete totals block", func() {
		BeforeEach(func() {
			text = `Total Qty 77.00
RINGGIT MALAYSIA EMPAT RIBU TUJUH RATUS SEMBILAN PULUH TIGA DAN SEN 50 SAHAJA 4,793.50`
		})

		It("should parse the declared quantity total", func() {
			Expect(totals.TotalQty).NotTo(BeNil())
			Expect(*totals.TotalQty).To(Equal(77.0))
		})

		It("should take the words line verbatim", func() {
			Expect(totals.AmountInWords).To(HavePrefix("RINGGIT MALAYSIA EMPAT RIBU"))
		})

		It("should take the last grouped-decimal number as the grand total", func() {
			Expect(totals.GrandTotal).NotTo(BeNil())
			Expect(*totals.GrandTotal).To(Equal(4793.50))
		})
	})

	When("the words line carries several numbers", func() {
		BeforeEach(func() {
			text = "RINGGIT MALAYSIA Total 100.00 Rounding 0.05 4,793.50"
		})

		It("should use the last number", func() {
			Expect(*totals.GrandTotal).To(Equal(4793.50))
		})
	})

	When("the words line has no numbers", func() {
		BeforeEach(func() {
			text = "RINGGIT MALAYSIA SERATUS SAHAJA"
		})

		It("should keep the line but leave the grand total unset", func() {
			Expect(totals.AmountInWords).To(Equal("RINGGIT MALAYSIA SERATUS SAHAJA"))
			Expect(totals.GrandTotal).To(BeNil())
		})
	})

	When("no totals appear at all", func() {
		BeforeEach(func() {
			text = "nothing to see here"
		})

		It("should return null totals and an empty words line", func() {
			Expect(totals.TotalQty).To(BeNil())
			Expect(totals.GrandTotal).To(BeNil())
			Expect(totals.AmountInWords).To(Equal(""))
		})
	})

	When("the words marker is lower case", func() {
		BeforeEach(func() {
			text = "ringgit malaysia dua ratus sahaja 200.00"
		})

		It("should match case-insensitively but keep the original case", func() {
			Expect(totals.AmountInWords).To(Equal("ringgit malaysia dua ratus sahaja 200.00"))
			Expect(*totals.GrandTotal).To(Equal(200.0))
		})
	})
})
