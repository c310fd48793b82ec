package services

import (
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"donorledger/models"
)

// Avery 5162 sheet geometry: 14 labels per page in 2 columns of 7 on an
// 8.5in x 11in page. Labels are 4in x 1.333in with a 0.5in top margin,
// 0.1875in side margins and 0.125in gaps between cells.
const (
	labelsPerPage = 14
	labelCols     = 2
	labelWidthIn  = 4.0
	labelHeightIn = 1.333
	labelTopIn    = 0.5
	labelSideIn   = 0.1875
	labelGapIn    = 0.125
)

type labelSlot struct {
	Left   string
	Top    string
	Filled bool
	ID     int64
	Name   string
	Street string
	City   string
}

var labelPageTemplate = template.Must(template.New("labels").Parse(`
<div style="position: relative; width: 8.5in; height: 11in; font-family: Arial, sans-serif;">
{{range .}}  <div style="position: absolute; left: {{.Left}}; top: {{.Top}}; width: 4in; height: 1.333in; box-sizing: border-box; padding: 6px 8px;">
{{if .Filled}}    <div style="font-size: 10px; font-weight: 600; margin-bottom: 2px;">#{{.ID}}</div>
    <div style="font-size: 14px;">{{.Name}}</div>
    <div style="font-size: 14px;">{{.Street}}</div>
    <div style="font-size: 14px;">{{.City}}</div>
{{end}}  </div>
{{end}}</div>
`))

func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "in"
}

// slotPosition returns the absolute offsets for slot idx, filling row by row.
func slotPosition(idx int) (left, top string) {
	col := idx % labelCols
	row := idx / labelCols
	left = inches(labelSideIn + float64(col)*(labelWidthIn+labelGapIn))
	top = inches(labelTopIn + float64(row)*(labelHeightIn+labelGapIn))
	return left, top
}

// GenerateLabelsHTML renders one mailing label per friend who donated in
// year, paginated onto fixed 14-slot sheets. The last page is padded with
// empty placeholder slots so the grid geometry stays stable.
func GenerateLabelsHTML(donations []models.Donation, friends []models.Friend, year int) (string, error) {
	yearDonations := donationsInYear(donations, year)
	if len(yearDonations) == 0 {
		return "", &NoDonationsError{Year: year}
	}

	// One label per donor, not per donation.
	seen := map[int64]bool{}
	ids := []int64{}
	for _, d := range yearDonations {
		if !seen[d.Friend] {
			seen[d.Friend] = true
			ids = append(ids, d.Friend)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	index := friendIndex(friends)
	type donor struct {
		id int64
		f  models.Friend
	}
	donors := []donor{}
	for _, id := range ids {
		if f, ok := index[id]; ok {
			donors = append(donors, donor{id: id, f: f})
		}
	}

	pages := []string{}
	for start := 0; start < len(donors); start += labelsPerPage {
		end := start + labelsPerPage
		if end > len(donors) {
			end = len(donors)
		}

		slots := make([]labelSlot, labelsPerPage)
		for i := range slots {
			left, top := slotPosition(i)
			slots[i] = labelSlot{Left: left, Top: top}
			if start+i < end {
				d := donors[start+i]
				slots[i].Filled = true
				slots[i].ID = d.id
				slots[i].Name = strings.TrimSpace(d.f.FirstName + " " + d.f.LastName)
				slots[i].Street = d.f.Address
				slots[i].City = cityLine(d.f)
			}
		}

		var page strings.Builder
		if err := labelPageTemplate.Execute(&page, slots); err != nil {
			return "", err
		}
		if end < len(donors) {
			page.WriteString(`<div style="page-break-after: always;"></div>`)
		}
		pages = append(pages, page.String())
	}

	// All donor ids were dangling references; emit one empty sheet so the
	// print window still shows a page.
	if len(pages) == 0 {
		slots := make([]labelSlot, labelsPerPage)
		for i := range slots {
			left, top := slotPosition(i)
			slots[i] = labelSlot{Left: left, Top: top}
		}
		var page strings.Builder
		if err := labelPageTemplate.Execute(&page, slots); err != nil {
			return "", err
		}
		pages = append(pages, page.String())
	}

	return "<div>\n" + strings.Join(pages, "\n") + "\n</div>", nil
}

// PrintLabelsDocument wraps generated label content in a standalone
// printable HTML document.
func PrintLabelsDocument(content string, year int) string {
	return fmt.Sprintf(`<html>
  <head>
    <title>Mailing Labels - %d Donors</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
      @media print {
        body {
          margin: 0;
          padding: 0;
          width: 100%%;
          height: 100%%;
        }
        @page { margin: 0.5cm; }
      }
    </style>
  </head>
  <body>
%s
  </body>
</html>
`, year, content)
}
