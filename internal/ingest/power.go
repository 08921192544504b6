package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"power_analysis/internal/model"
)

// MissingToken marks a missing value in the source export.
const MissingToken = "?"

const (
	dateLayout     = "02/01/2006"
	clockLayout    = "15:04:05"
	combinedLayout = dateLayout + " " + clockLayout
)

// PowerParser parses the semicolon-delimited household power consumption
// export.
//
// Expected format:
//
//	Date;Time;Global_active_power;Global_reactive_power;...
//	16/12/2006;17:24:00;4.216;0.418;...
//
// Only the Date, Time and Global_active_power columns are read; they are
// located by header name so surrounding columns may come and go. Rows with a
// missing or unparseable date, time or power value are dropped and counted,
// never fatal. Source row order is preserved.
type PowerParser struct{}

type powerColumns struct {
	date  int
	clock int
	power int
}

func (p *PowerParser) Parse(r io.Reader) ([]model.Observation, Stats, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("reading header: %w", err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, Stats{}, err
	}

	var observations []model.Observation
	var stats Stats
	lineNum := 1

	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Stats{}, fmt.Errorf("reading line %d: %w", lineNum, err)
		}

		stats.Rows++
		obs, err := parsePowerRecord(record, cols, lineNum)
		if err != nil {
			stats.Dropped++
			continue
		}
		observations = append(observations, obs)
	}

	return observations, stats, nil
}

func locateColumns(header []string) (powerColumns, error) {
	cols := powerColumns{date: -1, clock: -1, power: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Date":
			cols.date = i
		case "Time":
			cols.clock = i
		case "Global_active_power":
			cols.power = i
		}
	}
	if cols.date < 0 || cols.clock < 0 || cols.power < 0 {
		return cols, fmt.Errorf("header %q: need Date, Time and Global_active_power columns",
			strings.Join(header, ";"))
	}
	return cols, nil
}

func parsePowerRecord(record []string, cols powerColumns, lineNum int) (model.Observation, error) {
	for _, idx := range []int{cols.date, cols.clock, cols.power} {
		if idx >= len(record) {
			return model.Observation{}, fmt.Errorf("line %d: expected at least %d fields, got %d",
				lineNum, idx+1, len(record))
		}
	}

	date := strings.TrimSpace(record[cols.date])
	clock := strings.TrimSpace(record[cols.clock])
	power := strings.TrimSpace(record[cols.power])

	if date == MissingToken || clock == MissingToken || power == MissingToken {
		return model.Observation{}, fmt.Errorf("line %d: missing value", lineNum)
	}

	ts, err := time.Parse(combinedLayout, date+" "+clock)
	if err != nil {
		return model.Observation{}, fmt.Errorf("line %d: parsing timestamp: %w", lineNum, err)
	}

	kw, err := strconv.ParseFloat(power, 64)
	if err != nil {
		return model.Observation{}, fmt.Errorf("line %d: parsing active power: %w", lineNum, err)
	}

	return model.Observation{Timestamp: ts, ActivePower: kw}, nil
}
