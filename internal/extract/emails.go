package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/mail"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// emailDateLayout matches "<day>, <d> <Mon> <yyyy> <HH:MM:SS> <UTC offset>".
const emailDateLayout = "Mon, 2 Jan 2006 15:04:05 -0700"

// datePrefix trims trailing zone names some mailers append after the
// numeric offset.
var datePrefix = regexp.MustCompile(`^(.*? [-+]\d{4})`)

// EmailReader extracts records from an email corpus CSV whose message
// column holds raw RFC 822 text. Rows that fail to parse are dropped, not
// fatal: a malformed message, an unparseable date, or a missing or
// multiple recipient all skip the row.
type EmailReader struct {
	logger *zap.Logger

	// MessageColumn is the CSV column holding the raw message.
	MessageColumn string
}

// NewEmailReader creates a reader for the default Enron-style layout.
func NewEmailReader(logger *zap.Logger) *EmailReader {
	return &EmailReader{logger: logger, MessageColumn: "message"}
}

// ReadFile extracts records from a CSV file. maxRecords <= 0 reads all.
func (r *EmailReader) ReadFile(path string, maxRecords int) ([]core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return r.Read(f, maxRecords)
}

// Read extracts records from CSV content.
func (r *EmailReader) Read(src io.Reader, maxRecords int) ([]core.Record, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	msgCol := -1
	for i, name := range header {
		if name == r.MessageColumn {
			msgCol = i
			break
		}
	}
	if msgCol < 0 {
		return nil, fmt.Errorf("dataset has no %q column", r.MessageColumn)
	}

	var records []core.Record
	dropped := 0
	for maxRecords <= 0 || len(records) < maxRecords {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if msgCol >= len(row) {
			dropped++
			continue
		}

		rec, ok := ParseEmail(row[msgCol])
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	r.logger.Info("Extracted email records",
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped))

	return records, nil
}

// ParseEmail parses one raw RFC 822 message into a record. It returns
// false for messages without exactly one sender and one recipient, or
// with an unparseable date.
func ParseEmail(raw string) (core.Record, bool) {
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return core.Record{}, false
	}

	from := ParseAddresses(msg.Header.Get("From"))
	to := ParseAddresses(msg.Header.Get("To"))
	if len(from) != 1 || len(to) != 1 {
		return core.Record{}, false
	}

	date, ok := parseEmailDate(msg.Header.Get("Date"))
	if !ok {
		return core.Record{}, false
	}

	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return core.Record{}, false
	}

	return core.Record{
		From:    from[0],
		To:      to[0],
		Content: string(body),
		Date:    date,
	}, true
}

// ParseAddresses splits a comma-separated address field into a set of
// trimmed addresses. Duplicates collapse; an empty field yields nil.
func ParseAddresses(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(field, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

func parseEmailDate(field string) (time.Time, bool) {
	m := datePrefix.FindStringSubmatch(field)
	if m == nil {
		return time.Time{}, false
	}

	t, err := time.Parse(emailDateLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
