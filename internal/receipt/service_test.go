package receipt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vivatalent/receipt-extract/internal/extract"
)

var _ = Describe("Service", func() {
	var (
		extractor *mockExtractor
		storage   *mockStorage
		stats     *mockStats
		service   *Service
	)

	BeforeEach(func() {
		extractor = newMockExtractor()
		storage = newMockStorage()
		stats = newMockStats()
		service = NewService(extractor, storage, stats)
	})

	Describe("ProcessUpload", func() {
		var (
			upload Upload
			result *extract.Result
			status int
		)

		BeforeEach(func() {
			upload = Upload{Filename: "CS002101.pdf", Data: []byte("%PDF-1.4")}
		})

		JustBeforeEach(func() {
			result, status = service.ProcessUpload(upload)
		})

		When("the upload is valid", func() {
			It("should return the extraction result with HTTP 200", func() {
				Expect(status).To(Equal(200))
				Expect(result.Status).To(BeTrue())
				Expect(result.InvoiceNumber).To(Equal("CS002101"))
			})

			It("should save the file before extracting", func() {
				Expect(storage.saved).To(HaveKey("CS002101.pdf"))
				Expect(extractor.calls).To(HaveLen(1))
				Expect(extractor.calls[0].Path).To(Equal("/uploads/CS002101.pdf"))
				Expect(extractor.calls[0].Ext).To(Equal("pdf"))
			})

			It("should count a success", func() {
				Expect(stats.stats.TotalFiles).To(Equal(1))
				Expect(stats.stats.Success).To(Equal(1))
				Expect(stats.stats.Failed).To(Equal(0))
			})
		})

		When("no filename is given", func() {
			BeforeEach(func() {
				upload.Filename = ""
			})

			It("should reject with HTTP 400", func() {
				Expect(status).To(Equal(400))
				Expect(result.Status).To(BeFalse())
				Expect(result.Message).To(Equal("No file selected"))
			})

			It("should not touch the counters", func() {
				Expect(stats.stats.TotalFiles).To(Equal(0))
			})
		})

		When("the filename has no extension", func() {
			BeforeEach(func() {
				upload.Filename = "receipt"
			})

			It("should reject with HTTP 400", func() {
				Expect(status).To(Equal(400))
				Expect(result.Message).To(Equal("Missing file extension"))
			})
		})

		When("the extension is not allowed", func() {
			BeforeEach(func() {
				upload.Filename = "notes.txt"
			})

			It("should reject with HTTP 400", func() {
				Expect(status).To(Equal(400))
				Expect(result.Message).To(ContainSubstring("Invalid file type"))
			})

			It("should not reach the extractor", func() {
				Expect(extractor.calls).To(BeEmpty())
			})
		})

		When("the filename carries special characters", func() {
			BeforeEach(func() {
				upload.Filename = "IMG_@#!_scan (1).jpg"
			})

			It("should save under the sanitized name", func() {
				Expect(status).To(Equal(200))
				Expect(storage.saved).To(HaveKey("IMG__scan 1.jpg"))
			})
		})

		When("saving fails", func() {
			BeforeEach(func() {
				storage.saveErr = errBoom
			})

			It("should return a status=false record with HTTP 500", func() {
				Expect(status).To(Equal(500))
				Expect(result.Status).To(BeFalse())
				Expect(result.StatusCode).To(Equal(500))
			})

			It("should count a failure", func() {
				Expect(stats.stats.Failed).To(Equal(1))
			})
		})

		When("extraction fails", func() {
			BeforeEach(func() {
				extractor.err = errBoom
			})

			It("should return a status=false record with HTTP 500", func() {
				Expect(status).To(Equal(500))
				Expect(result.Status).To(BeFalse())
				Expect(result.Message).To(ContainSubstring("Error processing file"))
			})

			It("should count a failure", func() {
				Expect(stats.stats.TotalFiles).To(Equal(1))
				Expect(stats.stats.Failed).To(Equal(1))
			})
		})
	})

	Describe("ProcessUploadBatch", func() {
		var (
			uploads []Upload
			batch   *extract.BatchResult
		)

		JustBeforeEach(func() {
			batch = service.ProcessUploadBatch(uploads)
		})

		When("all uploads are valid", func() {
			BeforeEach(func() {
				uploads = []Upload{
					{Filename: "one.pdf", Data: []byte("a")},
					{Filename: "two.jpg", Data: []byte("b")},
				}
			})

			It("should process every file", func() {
				Expect(batch.Status).To(BeTrue())
				Expect(batch.Message).To(Equal("2 out of 2 files processed"))
			})

			It("should count every file", func() {
				Expect(stats.stats.TotalFiles).To(Equal(2))
			})
		})

		When("some uploads have invalid types", func() {
			BeforeEach(func() {
				uploads = []Upload{
					{Filename: "good.pdf", Data: []byte("a")},
					{Filename: "bad.exe", Data: []byte("b")},
				}
			})

			It("should skip the invalid upload silently", func() {
				Expect(batch.Message).To(Equal("1 out of 1 files processed"))
				Expect(extractor.calls).To(HaveLen(1))
			})
		})

		When("no uploads are valid", func() {
			BeforeEach(func() {
				uploads = []Upload{{Filename: "bad.exe", Data: []byte("b")}}
			})

			It("should report no valid files", func() {
				Expect(batch.Status).To(BeFalse())
				Expect(batch.Message).To(Equal("No valid files uploaded"))
				Expect(batch.Data).To(BeEmpty())
			})
		})
	})
})

var _ = Describe("sanitizeFilename", func() {
	It("should strip special characters and keep the extension", func() {
		Expect(sanitizeFilename("inv@ice#1.pdf")).To(Equal("invice1.pdf"))
	})

	It("should collapse whitespace runs", func() {
		Expect(sanitizeFilename("my    receipt.jpg")).To(Equal("my receipt.jpg"))
	})

	It("should fall back to a default base name", func() {
		Expect(sanitizeFilename("@#$.png")).To(Equal("receipt.png"))
	})

	It("should truncate very long names", func() {
		long := ""
		for i := 0; i < 30; i++ {
			long += "abc"
		}
		Expect(len(sanitizeFilename(long + ".pdf"))).To(Equal(54))
	})
})
