package infrastructure

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// buddhistEraOffset converts Gregorian years to Thai Buddhist-era years.
const buddhistEraOffset = 543

var thaiMonths = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var thaiMonthsShort = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

var (
	thaiNamedDate   = regexp.MustCompile(`^(\d{1,2})\s+(\S+)\s+(?:พ\.ศ\.\s*)?(\d{4})$`)
	thaiNumericDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ThaiDateConverter converts between ISO dates and Thai Buddhist-era dates.
type ThaiDateConverter struct{}

// NewThaiDateConverter creates a new ThaiDateConverter.
func NewThaiDateConverter() *ThaiDateConverter {
	return &ThaiDateConverter{}
}

// Format renders an ISO date (YYYY-MM-DD or RFC 3339) as "D <month> <BE year>".
// short selects abbreviated month names.
func (c *ThaiDateConverter) Format(text string, short bool) (string, error) {
	text = strings.TrimSpace(text)
	t, err := time.Parse("2006-01-02", text)
	if err != nil {
		t, err = time.Parse(time.RFC3339, text)
	}
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", text)
	}

	month := thaiMonths[t.Month()-1]
	if short {
		month = thaiMonthsShort[t.Month()-1]
	}
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year()+buddhistEraOffset), nil
}

// Parse reads a Thai date ("15 มกราคม 2567", "15 ม.ค. 2567" or "15/01/2567")
// and returns it as YYYY-MM-DD.
func (c *ThaiDateConverter) Parse(text string) (string, error) {
	t, ok := c.parseThai(strings.TrimSpace(text))
	if !ok {
		return "", fmt.Errorf("unable to parse Thai date %q", text)
	}
	return t.Format("2006-01-02"), nil
}

func (c *ThaiDateConverter) parseThai(text string) (time.Time, bool) {
	var day, month, beYear int

	if m := thaiNamedDate.FindStringSubmatch(text); m != nil {
		month = thaiMonthIndex(m[2])
		if month == 0 {
			return time.Time{}, false
		}
		day, _ = strconv.Atoi(m[1])
		beYear, _ = strconv.Atoi(m[3])
	} else if m := thaiNumericDate.FindStringSubmatch(text); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		beYear, _ = strconv.Atoi(m[3])
	} else {
		return time.Time{}, false
	}

	t, err := buildDate(beYear-buddhistEraOffset, month, day)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// thaiMonthIndex returns the 1-based month for a full or abbreviated name, or 0.
func thaiMonthIndex(name string) int {
	for i := range thaiMonths {
		if name == thaiMonths[i] || name == thaiMonthsShort[i] {
			return i + 1
		}
	}
	return 0
}

// buildDate rejects dates that time.Date would silently normalize, such as 31 February.
func buildDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, errors.New("date out of range")
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, errors.New("date out of range")
	}
	return t, nil
}
