// Command benchmark fits every gdlearn estimator on its reference dataset and
// reports fit/score timings.
//
// Usage:
//
//	benchmark [-config bench.yaml] [-preds | -no-preds]
//
// Settings come from built-in defaults, then the YAML file (-config or
// $GDLEARN_CONFIG), then GDLEARN_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/YuminosukeSato/gdlearn/benchmark"
	"github.com/YuminosukeSato/gdlearn/dataset"
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
	"github.com/YuminosukeSato/gdlearn/pkg/log"
	"github.com/YuminosukeSato/gdlearn/preprocessing"
	"github.com/YuminosukeSato/gdlearn/sklearn/linear_model"
	"github.com/YuminosukeSato/gdlearn/sklearn/neighbors"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("benchmark failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

// suite accumulates results and the per-run prediction printers in run order.
type suite struct {
	cfg      *benchmark.Config
	out      io.Writer
	recorder *benchmark.Recorder
	results  []benchmark.Result
	printers []func() error
	losses   []benchmark.LossSeries
}

func (s *suite) add(res benchmark.Result, printer func() error) {
	s.results = append(s.results, res)
	s.recorder.Observe(res)
	if printer != nil {
		s.printers = append(s.printers, printer)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file (default $"+benchmark.ConfigPathEnvVar+")")
	preds := fs.Bool("preds", false, "print predictions after the results table")
	noPreds := fs.Bool("no-preds", false, "do not print predictions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := benchmark.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	switch {
	case *preds:
		cfg.PrintPredictions = true
	case *noPreds:
		cfg.PrintPredictions = false
	}

	if err := log.SetupLogger(stderr, cfg.LogLevel); err != nil {
		return err
	}

	s := &suite{cfg: cfg, out: stdout, recorder: benchmark.NewRecorder()}

	if err := s.knnToy(ctx); err != nil {
		return err
	}
	if err := s.knnIris(ctx); err != nil {
		slog.Warn("skipping Iris benchmark", log.ErrAttr(err))
	}
	if err := s.linear(ctx); err != nil {
		slog.Error("LinearRegression benchmark failed", log.ErrAttr(err))
	}
	if err := s.logistic(ctx); err != nil {
		slog.Error("LogisticRegression benchmark failed", log.ErrAttr(err))
	}

	return s.report()
}

func (s *suite) knnToy(ctx context.Context) error {
	split := dataset.ToyDataset()
	knn, err := neighbors.NewKNeighborsClassifier[string](s.cfg.KNN.ToyK)
	if err != nil {
		return err
	}
	res, err := benchmark.Run[string](ctx, knn, split, "KNN", "ToyDataset")
	if err != nil {
		return err
	}
	s.add(res, func() error {
		return printLabels(s.out, "ToyDataset", knn, split, s.cfg.MaxPredictions)
	})
	return nil
}

func (s *suite) knnIris(ctx context.Context) error {
	table, err := dataset.LoadIrisCSV(s.cfg.KNN.IrisPath)
	if err != nil {
		return err
	}
	X, y, err := dataset.IrisToXY(table.Rows)
	if err != nil {
		return err
	}
	split, err := dataset.TrainTestSplit(X, y, s.cfg.KNN.IrisSplit, s.cfg.KNN.IrisSeed)
	if err != nil {
		return err
	}
	knn, err := neighbors.NewKNeighborsClassifier[string](s.cfg.KNN.IrisK)
	if err != nil {
		return err
	}
	res, err := benchmark.Run[string](ctx, knn, split, "KNN", "Iris")
	if err != nil {
		return err
	}
	s.add(res, func() error {
		return printLabels(s.out, "Iris", knn, split, s.cfg.MaxPredictions)
	})
	return nil
}

func (s *suite) linear(ctx context.Context) error {
	c := s.cfg.Linear
	data, err := dataset.MakeLinear(c.Samples, c.Features, c.Noise, c.DataSeed)
	if err != nil {
		return err
	}
	split, err := dataset.TrainTestSplit(data.X, data.Y, s.cfg.TestSize, c.SplitSeed)
	if err != nil {
		return err
	}
	lr, err := linear_model.NewLinearRegression(
		linear_model.WithLearningRate(c.LearningRate),
		linear_model.WithNIters(c.NIters),
	)
	if err != nil {
		return err
	}
	res, err := benchmark.Run[float64](ctx, lr, split, "LinearRegression", "SyntheticLinear")
	if err != nil {
		return err
	}
	s.losses = append(s.losses, benchmark.LossSeries{Name: "LinearRegression (MSE)", Loss: lr.LossHistory()})
	s.add(res, func() error {
		pred, err := lr.Predict(split.XTest)
		if err != nil {
			return err
		}
		tw := newTable(s.out, "SyntheticLinear", "INDEX\tTRUTH\tPRED")
		for i := 0; i < limit(len(pred), s.cfg.MaxPredictions); i++ {
			fmt.Fprintf(tw, "%d\t%.3f\t%.3f\n", i, split.YTest[i], pred[i])
		}
		return tw.Flush()
	})
	return nil
}

func (s *suite) logistic(ctx context.Context) error {
	c := s.cfg.Logistic
	X, y := dataset.MakeLogistic(c.Samples, c.DataSeed)
	split, err := dataset.TrainTestSplit(X, y, s.cfg.TestSize, c.SplitSeed)
	if err != nil {
		return err
	}

	// Scaling statistics come from the training rows only.
	scaler := preprocessing.NewStandardScalerDefault()
	if split.XTrain, err = scaler.FitTransform(split.XTrain); err != nil {
		return err
	}
	if split.XTest, err = scaler.Transform(split.XTest); err != nil {
		return err
	}

	nJobs := c.NJobs
	if nJobs == 0 {
		nJobs = runtime.NumCPU()
	}
	clf, err := linear_model.NewLogisticRegression(
		linear_model.WithLogisticLearningRate(c.LearningRate),
		linear_model.WithLogisticNIters(c.NIters),
		linear_model.WithNJobs(nJobs),
	)
	if err != nil {
		return err
	}
	res, err := benchmark.Run[float64](ctx, clf, split, "LogisticRegression", "SyntheticLogistic")
	if err != nil {
		return err
	}
	s.losses = append(s.losses, benchmark.LossSeries{Name: "LogisticRegression (log-loss)", Loss: clf.LossHistory()})
	s.add(res, func() error {
		probs, err := clf.PredictProba(split.XTest)
		if err != nil {
			return err
		}
		preds, err := clf.Predict(split.XTest)
		if err != nil {
			return err
		}
		tw := newTable(s.out, "SyntheticLogistic", "INDEX\tTRUTH\tPROB1\tPRED")
		for i := 0; i < limit(len(preds), s.cfg.MaxPredictions); i++ {
			fmt.Fprintf(tw, "%d\t%g\t%.3f\t%g\n", i, split.YTest[i], probs[i], preds[i])
		}
		return tw.Flush()
	})
	return nil
}

func (s *suite) report() error {
	if len(s.results) == 0 {
		return errors.New("no benchmark produced a result")
	}
	if err := benchmark.FormatTable(s.out, s.results); err != nil {
		return err
	}

	if s.cfg.PrintPredictions {
		for _, p := range s.printers {
			if err := p(); err != nil {
				return err
			}
		}
	}

	if s.cfg.ResultsPath != "" {
		if err := benchmark.AppendJSONL(s.cfg.ResultsPath, s.results); err != nil {
			return err
		}
	}
	if s.cfg.MetricsPath != "" {
		if err := s.recorder.WriteTextfile(s.cfg.MetricsPath); err != nil {
			return err
		}
	}
	if s.cfg.PlotPath != "" && len(s.losses) > 0 {
		if err := benchmark.PlotLoss(s.cfg.PlotPath, s.losses...); err != nil {
			return err
		}
	}
	return nil
}

func printLabels(w io.Writer, name string, knn *neighbors.KNeighborsClassifier[string], split dataset.Split[[]float64, string], maxRows int) error {
	pred, err := knn.Predict(split.XTest)
	if err != nil {
		return err
	}
	tw := newTable(w, name, "INDEX\tTRUTH\tPRED")
	for i := 0; i < limit(len(pred), maxRows); i++ {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, split.YTest[i], pred[i])
	}
	return tw.Flush()
}

func newTable(w io.Writer, name, header string) *tabwriter.Writer {
	fmt.Fprintf(w, "\nPredictions (%s):\n", name)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	return tw
}

// limit caps n at maxRows; 0 means no cap.
func limit(n, maxRows int) int {
	if maxRows > 0 && n > maxRows {
		return maxRows
	}
	return n
}
