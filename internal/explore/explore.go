// Package explore produces the exploratory summaries consumed by the console
// report: descriptive statistics, the feature/target correlation matrix and
// the hourly load profile. It reads Loader/Deriver output and feeds nothing
// back into the pipeline.
package explore

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"power_analysis/internal/model"
)

// Frame builds a dataframe over the featurized series with one column per
// encoded feature plus the target.
func Frame(rows []model.FeaturizedObservation) dataframe.DataFrame {
	n := len(rows)
	day := make([]int, n)
	month := make([]int, n)
	year := make([]int, n)
	hour := make([]int, n)
	weekday := make([]int, n)
	power := make([]float64, n)

	for i, row := range rows {
		day[i] = row.Day
		month[i] = row.MonthIndex()
		year[i] = row.Year
		hour[i] = row.Hour
		weekday[i] = row.WeekdayIndex()
		power[i] = row.ActivePower
	}

	return dataframe.New(
		series.New(day, series.Int, "day"),
		series.New(month, series.Int, "month"),
		series.New(year, series.Int, "year"),
		series.New(hour, series.Int, "hour"),
		series.New(weekday, series.Int, "weekday"),
		series.New(power, series.Float, "active_power"),
	)
}

// Describe writes gota's descriptive statistics for the featurized series.
func Describe(w io.Writer, rows []model.FeaturizedObservation) {
	fmt.Fprintln(w, Frame(rows).Describe())
}

// CorrelationMatrix computes the Pearson correlation matrix over the encoded
// feature columns plus the target. Column order is model.FeatureNames()
// followed by "active_power". Constant columns yield NaN entries. The series
// must be non-empty.
func CorrelationMatrix(rows []model.FeaturizedObservation) (*mat.SymDense, []string, error) {
	if len(rows) == 0 {
		return nil, nil, errors.New("no featurized rows to correlate")
	}

	names := append(model.FeatureNames(), "active_power")

	data := mat.NewDense(len(rows), len(names), nil)
	for i, row := range rows {
		for j, v := range row.Vector() {
			data.Set(i, j, v)
		}
		data.Set(i, len(names)-1, row.ActivePower)
	}

	corr := mat.NewSymDense(len(names), nil)
	stat.CorrelationMatrix(corr, data, nil)
	return corr, names, nil
}

// PrintCorrelation writes the correlation matrix as an aligned table.
func PrintCorrelation(w io.Writer, corr *mat.SymDense, names []string) {
	fmt.Fprintf(w, "%-14s", "")
	for _, name := range names {
		fmt.Fprintf(w, "%14s", name)
	}
	fmt.Fprintln(w)

	for i, name := range names {
		fmt.Fprintf(w, "%-14s", name)
		for j := range names {
			fmt.Fprintf(w, "%14.3f", corr.At(i, j))
		}
		fmt.Fprintln(w)
	}
}

// HourlyProfile returns the mean active power for each hour of day.
func HourlyProfile(rows []model.FeaturizedObservation) [24]float64 {
	var sums [24]float64
	var counts [24]int

	for _, row := range rows {
		sums[row.Hour] += row.ActivePower
		counts[row.Hour]++
	}

	var profile [24]float64
	for h := 0; h < 24; h++ {
		if counts[h] > 0 {
			profile[h] = sums[h] / float64(counts[h])
		}
	}
	return profile
}
