package services

import (
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"
	"time"

	"donorledger/models"
)

// timeNow is a variable so tests can pin the clock.
var timeNow = time.Now

// DefaultReportYear is the year receipts and labels cover when the caller
// does not name one: the last full calendar year.
func DefaultReportYear() int {
	return timeNow().Year() - 1
}

// NoDonationsError means the requested year has no donations at all. It is a
// user-facing condition shown as an alert, not a system fault.
type NoDonationsError struct {
	Year int
}

func (e *NoDonationsError) Error() string {
	return fmt.Sprintf("No donations found for %d", e.Year)
}

// donationDate parses an eDate value. The store holds plain dates, but rows
// imported from older exports carry full timestamps.
func donationDate(d models.Donation) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, d.EDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// donationsInYear filters donations to those whose eDate falls in year,
// preserving input order. Rows with an unparseable eDate never match.
func donationsInYear(donations []models.Donation, year int) []models.Donation {
	matched := []models.Donation{}
	for _, d := range donations {
		if t, ok := donationDate(d); ok && t.Year() == year {
			matched = append(matched, d)
		}
	}
	return matched
}

// friendIndex keys friends by their numeric id for donation lookups.
func friendIndex(friends []models.Friend) map[int64]models.Friend {
	index := make(map[int64]models.Friend, len(friends))
	for _, f := range friends {
		id, err := strconv.ParseInt(f.ID, 10, 64)
		if err != nil {
			continue
		}
		index[id] = f
	}
	return index
}

// friendDisplayName is the salutation line on receipts and labels. A friend
// with no name at all falls back to the id so the receipt is still usable.
func friendDisplayName(f models.Friend, id int64) string {
	name := strings.TrimSpace(f.FirstName + " " + f.LastName)
	if name == "" {
		return fmt.Sprintf("Friend ID: %d", id)
	}
	return name
}

// cityLine renders "City, ST 12345" with the comma only when a city exists.
func cityLine(f models.Friend) string {
	city := f.City
	if city != "" {
		city += ","
	}
	return strings.TrimSpace(city + " " + strings.TrimSpace(f.State+" "+f.Zipcode))
}

// paymentMethodLabel derives the human label from the overloaded Check
// field, which holds either a check number or a payment-method token.
func paymentMethodLabel(check string) string {
	switch {
	case check == "paypal":
		return "PayPal"
	case check == "zelle":
		return "Zelle"
	case strings.HasPrefix(check, "ACH"):
		return check
	default:
		return "Check #" + check
	}
}

type receiptRow struct {
	Date   string
	Method string
	Amount string
}

type receiptPage struct {
	FriendID    int64
	Name        string
	Address     string
	CityLine    string
	Year        int
	HeadingYear int
	Today       string
	Rows        []receiptRow
	Total       string
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`
<div style="page-break-after: always; padding: 50px; font-family: Arial, sans-serif; display: flex; flex-direction: column; min-height: 90vh;">
  <div style="flex: 1;">
    <div style="text-align: center; margin-bottom: 12px; display: flex; gap: 4px; align-items: center;">
      <img src="https://www.claymusic.org/wp-content/uploads/2015/07/home_logo.gif" alt="Clay Music Logo" style="height: 35px;" />
    </div>

    <div style="text-align: center; margin-bottom: 15px;">
      <h2 style="font-size: 24px; margin: 0;">{{.HeadingYear}} Donation Receipt</h2>
    </div>

    <div style="margin-bottom: 20px;">
      <div style="font-size: 10px;">#{{.FriendID}}</div>
      <div>{{.Name}}</div>
      <div>{{.Address}}</div>
      <div>{{.CityLine}}</div>
    </div>

    <p style="margin: 35px 0 30px 0;">{{.Today}}</p>

    <div style="margin: 15px 0;">
      <p style="margin-bottom: 20px;">Dear {{.Name}},</p>
      <p style="margin: 20px 0;">Clay Music hereby gratefully acknowledges receipt of your donation as follows in the year of {{.Year}}.</p>
    </div>

    <div style="margin: 12px 0;">
      <table style="width: 100%; border-collapse: collapse;">
        <thead>
          <tr>
            <th style="text-align: left; border-bottom: 1px solid #000; padding: 4px;">Date</th>
            <th style="text-align: left; border-bottom: 1px solid #000; padding: 4px;">Donation Method</th>
            <th style="text-align: left; border-bottom: 1px solid #000; padding: 4px;">Amount</th>
          </tr>
        </thead>
        <tbody>
{{range .Rows}}          <tr>
            <td style="padding: 3px 0; font-size: 14px;">{{.Date}}</td>
            <td style="padding: 3px 0; font-size: 14px;">{{.Method}}</td>
            <td style="padding: 3px 0; font-size: 14px;">{{.Amount}}</td>
          </tr>
{{end}}          <tr><td><br></td></tr>
          <tr>
            <td></td>
            <td style="font-size: 16px; text-align: right; font-weight: bold; padding-top: 4px;">Total:&nbsp;&nbsp;</td>
            <td style="font-size: 16px; font-weight: bold; padding-top: 4px;">{{.Total}}</td>
          </tr>
        </tbody>
      </table>
    </div>
  </div>

  <div style="margin: 10px 0;">
    <p style="margin: 4px 0; font-size: 14px;">Thank you for your support.<br>
    May God bless you even more abundantly.<br><br></p>

    <p style="margin: 10px 0 4px 0;">Love in Christ,</p>

    <div style="margin: 8px 0; font-family: 'Dancing Script', cursive; font-size: 22px; font-weight: bold;">
      Amy Sand
    </div>

    <p>Clay Music</p>
    <br><br>
  </div>

  <div style="text-align: center;">
    <p style="font-size: 10px; margin: 3px 0;">No goods or services were provided in consideration of the donations</p>
    <hr style="width: 50%; margin: 8px auto; border: 0.5px solid #ccc;">
    <p style="font-size: 9px; margin: 3px 0; line-height: 1.2;">
      www.claymusic.org / email: amy@claymusic.org<br>
      Clay Music Address: P.O. Box 5451 Diamond Bar, CA 91765-7451 / Tel &amp; Fax: 909-861-7906
    </p>
  </div>
</div>
`))

// GenerateReceiptsHTML renders one printable receipt page per friend who
// donated in year. Donations whose friend no longer exists are dropped from
// the output; they still count toward the "any donations at all" check.
func GenerateReceiptsHTML(donations []models.Donation, friends []models.Friend, year int) (string, error) {
	yearDonations := donationsInYear(donations, year)
	if len(yearDonations) == 0 {
		return "", &NoDonationsError{Year: year}
	}

	// Group by friend id, keeping the order ids first appear in.
	byFriend := map[int64][]models.Donation{}
	order := []int64{}
	for _, d := range yearDonations {
		if _, seen := byFriend[d.Friend]; !seen {
			order = append(order, d.Friend)
		}
		byFriend[d.Friend] = append(byFriend[d.Friend], d)
	}

	index := friendIndex(friends)
	now := timeNow()

	var out strings.Builder
	for _, friendID := range order {
		friend, ok := index[friendID]
		if !ok {
			continue
		}
		group := byFriend[friendID]

		sort.SliceStable(group, func(i, j int) bool {
			ti, _ := donationDate(group[i])
			tj, _ := donationDate(group[j])
			return ti.Before(tj)
		})

		total := 0.0
		rows := make([]receiptRow, 0, len(group))
		for _, d := range group {
			total += d.Amount
			rows = append(rows, receiptRow{
				Date:   d.EDate,
				Method: paymentMethodLabel(d.Check),
				Amount: fmt.Sprintf("$%.2f", d.Amount),
			})
		}

		page := receiptPage{
			FriendID:    friendID,
			Name:        friendDisplayName(friend, friendID),
			Address:     friend.Address,
			CityLine:    cityLine(friend),
			Year:        year,
			HeadingYear: now.Year(),
			Today:       now.Format("January 2, 2006"),
			Rows:        rows,
			Total:       fmt.Sprintf("$%.2f", total),
		}
		if err := receiptTemplate.Execute(&out, page); err != nil {
			return "", err
		}
	}

	return out.String(), nil
}

// PrintReceiptsDocument wraps generated receipt content in a standalone
// printable HTML document.
func PrintReceiptsDocument(content string, year int) string {
	return fmt.Sprintf(`<html>
  <head>
    <title>Donation Receipts - %d</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
      @media print {
        body {
          margin: 0;
          padding: 0;
          width: 100%%;
          height: 100%%;
        }
        @page { margin: 0.3cm; }
      }
      @import url('https://fonts.googleapis.com/css2?family=Dancing+Script:wght@700&display=swap');
    </style>
  </head>
  <body>
%s
  </body>
</html>
`, year, content)
}
