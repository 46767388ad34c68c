package benchmark

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// record is the JSONL line layout of a Result.
type record struct {
	RunID       string                 `json:"run_id"`
	Algorithm   string                 `json:"algorithm"`
	Dataset     string                 `json:"dataset"`
	NTrain      int                    `json:"n_train"`
	NTest       int                    `json:"n_test"`
	NFeatures   int                    `json:"n_features"`
	Params      map[string]interface{} `json:"params,omitempty"`
	FitTimeMs   float64                `json:"fit_time_ms"`
	PredictTime float64                `json:"predict_time_ms"`
	Score       float64                `json:"score"`
	MemoryMB    float64                `json:"memory_mb"`
}

func toRecord(r Result) record {
	return record{
		RunID:       r.RunID,
		Algorithm:   r.Algorithm,
		Dataset:     r.Dataset,
		NTrain:      r.NTrain,
		NTest:       r.NTest,
		NFeatures:   r.NFeatures,
		Params:      r.Params,
		FitTimeMs:   millis(r.FitTime),
		PredictTime: millis(r.PredictTime),
		Score:       r.Score,
		MemoryMB:    r.MemoryMB,
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// WriteJSONL writes one JSON object per result.
func WriteJSONL(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(toRecord(r)); err != nil {
			return errors.Wrapf(err, "encode result %s", r.RunID)
		}
	}
	return nil
}

// AppendJSONL appends results to the file at path, creating it if needed.
func AppendJSONL(path string, results []Result) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := WriteJSONL(bw, results); err != nil {
		return err
	}
	return bw.Flush()
}

// FormatTable writes results as an aligned text table.
func FormatTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tDATASET\tN_TRAIN\tN_TEST\tN_FEATURES\tPARAMS\tFIT\tPREDICT\tSCORE\tMEMORY_MB")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%.2f ms\t%.2f ms\t%.3f\t%.1f\n",
			r.Algorithm, r.Dataset, r.NTrain, r.NTest, r.NFeatures, r.ParamString(),
			millis(r.FitTime), millis(r.PredictTime), r.Score, r.MemoryMB)
	}
	return tw.Flush()
}
