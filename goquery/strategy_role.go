package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlapinski/offprint"
)

var _ offprint.BodyStrategy = (*RoleStrategy)(nil)

// RoleStrategy locates body fragments by their explicit structural role
// markers: elements the site stamps with a paragraph/heading/image role
// attribute. This is the highest-priority strategy because the markers,
// when present, identify body content unambiguously regardless of class
// name churn.
type RoleStrategy struct{}

// NewRoleStrategy creates a new RoleStrategy.
func NewRoleStrategy() *RoleStrategy {
	return &RoleStrategy{}
}

// Name returns the strategy's identifier.
func (s *RoleStrategy) Name() string {
	return "role-marker"
}

// Fragments returns every role-marked body element in document order.
func (s *RoleStrategy) Fragments(html string) ([]offprint.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, offprint.Errorf(offprint.EINVALID, "failed to parse HTML: %v", err)
	}

	selector := "[" + roleAttr + "=paragraph]," +
		"[" + roleAttr + "=heading]," +
		"[" + roleAttr + "=pull-quote]," +
		"figure[" + roleAttr + "=image]"

	var frags []offprint.Fragment
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		frags = append(frags, fragmentFromSelection(sel))
	})
	return frags, nil
}
