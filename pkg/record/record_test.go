package record_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/stacks/pkg/record"
)

func TestRecord(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Record Suite")
}

var _ = Describe("LoadCSV", func() {
	It("loads text, index, and source_url columns", func() {
		data := `index,text,source_url
a1,first passage,https://example.com/1
a2,second passage,https://example.com/2
`
		records, err := record.LoadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0]).To(Equal(record.Record{
			ID:        "a1",
			Text:      "first passage",
			SourceURL: "https://example.com/1",
		}))
		Expect(records[1].ID).To(Equal("a2"))
	})

	It("defaults the ID to the row position when there is no index column", func() {
		data := "text\nalpha\nbeta\ngamma\n"
		records, err := record.LoadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(3))
		Expect(records[0].ID).To(Equal("0"))
		Expect(records[2].ID).To(Equal("2"))
		Expect(records[2].SourceURL).To(BeEmpty())
	})

	It("falls back to the row position when an index cell is empty", func() {
		data := "index,text\n,alpha\nk7,beta\n"
		records, err := record.LoadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(records[0].ID).To(Equal("0"))
		Expect(records[1].ID).To(Equal("k7"))
	})

	It("matches column names case-insensitively", func() {
		data := "Text,Source_URL\nhello,https://example.com\n"
		records, err := record.LoadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(records[0].Text).To(Equal("hello"))
		Expect(records[0].SourceURL).To(Equal("https://example.com"))
	})

	It("fails fast when the text column is missing", func() {
		data := "id,body\n1,hello\n"
		_, err := record.LoadCSV(strings.NewReader(data))
		Expect(err).To(MatchError(record.ErrMissingTextColumn))
	})

	It("fails fast on empty input", func() {
		_, err := record.LoadCSV(strings.NewReader(""))
		Expect(err).To(MatchError(record.ErrMissingTextColumn))
	})

	It("surfaces malformed rows with their position", func() {
		data := "text,source_url\nok,https://example.com\nonly-one-field\n"
		_, err := record.LoadCSV(strings.NewReader(data))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("row 1"))
	})
})
