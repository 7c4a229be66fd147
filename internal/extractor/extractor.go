package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-patent-vision/pkg/models"
)

// FieldExtractor pulls the record fields out of a parsed patent page. Each
// method returns nil when its element is missing and never fails.
type FieldExtractor interface {
	Parse(r io.Reader) (*goquery.Document, error)
	ExtractTitle(doc *goquery.Document) *string
	ExtractInventors(doc *goquery.Document) *string
	ExtractAssignee(doc *goquery.Document) *string
}

// SelectorExtractor implements FieldExtractor with CSS selectors.
type SelectorExtractor struct {
	selectors Selectors
}

func NewSelectorExtractor(selectors Selectors) *SelectorExtractor {
	return &SelectorExtractor{selectors: DefaultSelectors().Merge(selectors)}
}

// Selectors returns the effective selector set.
func (e *SelectorExtractor) Selectors() Selectors {
	return e.selectors
}

func (e *SelectorExtractor) Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func (e *SelectorExtractor) ExtractTitle(doc *goquery.Document) *string {
	sel := doc.Find(e.selectors.Title).First()
	if sel.Length() == 0 {
		return nil
	}
	return text(sel)
}

// ExtractInventors joins the trimmed text of every item in the first
// inventors list, in document order. A list without items yields "".
func (e *SelectorExtractor) ExtractInventors(doc *goquery.Document) *string {
	list := doc.Find(e.selectors.InventorsList).First()
	if list.Length() == 0 {
		return nil
	}
	names := make([]string, 0)
	list.Find(e.selectors.InventorItem).Each(func(_ int, item *goquery.Selection) {
		names = append(names, strings.TrimSpace(item.Text()))
	})
	joined := strings.Join(names, ", ")
	return &joined
}

func (e *SelectorExtractor) ExtractAssignee(doc *goquery.Document) *string {
	holder := doc.Find(e.selectors.AssigneeContainer).First()
	if holder.Length() == 0 {
		return nil
	}
	name := holder.Find(e.selectors.AssigneeName).First()
	if name.Length() == 0 {
		return nil
	}
	return text(name)
}

// Extract runs every field extraction against doc.
func Extract(fx FieldExtractor, doc *goquery.Document) models.PatentRecord {
	return models.PatentRecord{
		Title:     fx.ExtractTitle(doc),
		Inventors: fx.ExtractInventors(doc),
		Assignee:  fx.ExtractAssignee(doc),
	}
}

func text(sel *goquery.Selection) *string {
	s := strings.TrimSpace(sel.Text())
	return &s
}
