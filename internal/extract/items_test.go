package extract

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseItems", func() {
	var (
		text  string
		items []LineItem
	)

	JustBeforeEach(func() {
		items = ParseItems(text)
	})

	When("parsing a plain item line", func() {
		BeforeEach(func() {
			text = "1. PCC-50KG 50KG CEMENT BAG 20.00 BAG 22.00 440.00"
		})

		It("should yield exactly one item", func() {
			Expect(items).To(HaveLen(1))
		})

		It("should parse every field", func() {
			Expect(items[0].LineNo).To(Equal(1))
			Expect(items[0].ItemCode).To(Equal("PCC-50KG"))
			Expect(items[0].Description).To(Equal("50KG CEMENT BAG"))
			Expect(items[0].Qty).To(Equal(20.0))
			Expect(items[0].UOM).To(Equal("BAG"))
			Expect(items[0].UnitPrice).To(Equal(22.0))
			Expect(items[0].Disc).To(Equal(""))
			Expect(items[0].LineTotal).To(Equal(440.0))
		})
	})

	When("parsing a discount-bearing line", func() {
		BeforeEach(func() {
			text = "6. UP-3B 4IN PIPE CS 2.00 LGTH 101.00 30% 141.40"
		})

		It("should capture the discount token", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Disc).To(Equal("30%"))
			Expect(items[0].LineTotal).To(Equal(141.40))
		})
	})

	When("amounts carry thousands separators", func() {
		BeforeEach(func() {
			text = "2. STL-BEAM H BEAM STEEL 3.00 PCS 1,250.00 3,750.00"
		})

		It("should strip the separators before conversion", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].UnitPrice).To(Equal(1250.0))
			Expect(items[0].LineTotal).To(Equal(3750.0))
		})
	})

	When("the text mixes item lines with noise", func() {
		BeforeEach(func() {
			text = `ItemItem Description Qty UOM U/Price Amount
1. PCC-50KG 50KG CEMENT BAG 20.00 BAG 22.00 440.00

Total Qty 20.00
RINGGIT MALAYSIA EMPAT RATUS SAHAJA 440.00`
		})

		It("should skip non-matching lines silently", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].ItemCode).To(Equal("PCC-50KG"))
		})
	})

	When("the text has no item lines at all", func() {
		BeforeEach(func() {
			text = "CASH SALE\nheader only\n\n"
		})

		It("should yield zero items without raising", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("source numbering has gaps and duplicates", func() {
		BeforeEach(func() {
			text = `3. AAA-1 FIRST THING 1.00 PCS 10.00 10.00
3. BBB-2 SECOND THING 1.00 PCS 20.00 20.00
7. CCC-3 THIRD THING 1.00 PCS 30.00 30.00`
		})

		It("should preserve sequence numbers verbatim and in source order", func() {
			Expect(items).To(HaveLen(3))
			Expect(items[0].LineNo).To(Equal(3))
			Expect(items[1].LineNo).To(Equal(3))
			Expect(items[2].LineNo).To(Equal(7))
			Expect(items[1].ItemCode).To(Equal("BBB-2"))
		})
	})
})
