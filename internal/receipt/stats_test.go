package receipt

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltStats", func() {
	var (
		tempDir string
		store   *BoltStats
		err     error
	)

	BeforeEach(func() {
		tempDir, err = os.MkdirTemp("", "receipt-stats-test-*")
		Expect(err).NotTo(HaveOccurred())

		store, err = NewBoltStats(filepath.Join(tempDir, "stats.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		store.Close()
		os.RemoveAll(tempDir)
	})

	When("no counters were ever bumped", func() {
		It("should snapshot zero counters", func() {
			stats, err := store.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats).To(Equal(Stats{}))
		})
	})

	When("counters are bumped", func() {
		BeforeEach(func() {
			Expect(store.Bump(true)).To(Succeed())
			Expect(store.Bump(true)).To(Succeed())
			Expect(store.Bump(false)).To(Succeed())
		})

		It("should accumulate totals, successes and failures", func() {
			stats, err := store.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalFiles).To(Equal(3))
			Expect(stats.Success).To(Equal(2))
			Expect(stats.Failed).To(Equal(1))
		})
	})

	When("the store is reopened", func() {
		BeforeEach(func() {
			Expect(store.Bump(true)).To(Succeed())
			Expect(store.Close()).To(Succeed())

			store, err = NewBoltStats(filepath.Join(tempDir, "stats.db"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep counters across restarts", func() {
			stats, err := store.Snapshot()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalFiles).To(Equal(1))
			Expect(stats.Success).To(Equal(1))
		})
	})
})
