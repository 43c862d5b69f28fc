package report

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/peopledb/store"
)

func TestWriteHTML(t *testing.T) {
	s := store.New(0)
	s.GrowPage()
	s.Replace(3, "Ann <b>", 3)

	buf := &bytes.Buffer{}
	err := WriteHTML(buf, s.Scan())
	AssertNil(err)

	html := buf.String()
	AssertTrue(strings.HasPrefix(html, "<html>"))
	AssertTrue(strings.Contains(html, "<title>Person Status Report</title>"))
	AssertEqual(strings.Count(html, "<td>"), 3*store.PageSize)
	AssertTrue(strings.Contains(html, "<td>Ann &lt;b&gt;</td>"))
	AssertTrue(strings.Contains(html, "<td>DEAD</td>"))
	AssertTrue(strings.HasSuffix(html, "</html>\n"))
}

func TestWriteHTML_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteHTML(buf, store.New(0).Scan())
	AssertNil(err)
	AssertEqual(strings.Count(buf.String(), "<tr>"), 1)
}
