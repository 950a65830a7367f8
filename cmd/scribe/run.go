package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/scribe/config"
	"github.com/jonwraymond/scribe/jsbridge"
	"github.com/jonwraymond/scribe/logging"
	"github.com/jonwraymond/scribe/metrics"
	"github.com/jonwraymond/scribe/report"
	"github.com/jonwraymond/scribe/scribe"
)

// execution is one script run.
type execution struct {
	ID      string
	Script  string
	Result  jsbridge.Result
	Metrics *prometheus.Registry
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script.js>",
		Short: "Run a script and print the recorded call histories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, runErr := a.execute(cmd.Context(), args[0])
			if ex == nil {
				return runErr
			}
			if err := a.print(cmd.OutOrStdout(), ex); err != nil {
				return err
			}
			if ex.Metrics != nil {
				if err := metrics.WriteSummary(cmd.ErrOrStderr(), ex.Metrics); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	addRunFlags(cmd)
	cmd.Flags().StringP("output", "o", config.OutputText, "output format: text or json")
	cmd.Flags().Bool("metrics", false, "print call metrics to stderr")
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("timeout", 0, "script timeout")
	cmd.Flags().String("mode", "", "default interception mode: delegation or mutative")
	cmd.Flags().Bool("log-calls", false, "log every completed call at debug level")
}

// execute runs the script at path. The execution is returned with the
// script error when the script failed after starting.
func (a *app) execute(ctx context.Context, path string) (*execution, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ex := &execution{ID: uuid.NewString(), Script: path}
	logger := a.logger.With("run_id", ex.ID, "script", path)

	var logs []scribe.LogFunc
	if a.cfg.Log.Calls {
		logs = append(logs, logging.NewCallLogger(logger, logging.LevelDebug))
	}
	if a.cfg.Metrics.Enabled {
		ex.Metrics = prometheus.NewRegistry()
		logs = append(logs, metrics.NewCollector(ex.Metrics, a.cfg.Metrics.Namespace).LogFunc())
	}

	engine := jsbridge.NewEngine(a.cfg.Timeout,
		jsbridge.WithMode(a.cfg.ScribeMode()),
		jsbridge.WithLog(scribe.Tee(logs...)),
		jsbridge.WithLogger(logging.Logf(logger)),
	)

	logger.Debug("running script", "timeout", a.cfg.Timeout, "mode", a.cfg.Mode)
	ex.Result, err = engine.Run(ctx, filepath.Base(path), string(src))
	if err != nil {
		logger.Error("script failed", "error", err, "duration", ex.Result.Duration)
		return ex, err
	}
	logger.Info("script finished", "duration", ex.Result.Duration, "entities", ex.Result.Registry.Len())
	return ex, nil
}

// runOutput is the JSON document printed by run.
type runOutput struct {
	RunID    string          `json:"runId"`
	Script   string          `json:"script"`
	Value    any             `json:"value,omitempty"`
	Logs     []string        `json:"logs"`
	Entities []report.Entity `json:"entities"`
}

func (a *app) print(w io.Writer, ex *execution) error {
	entities := report.FromRegistry(ex.Result.Registry)

	if a.cfg.Output == config.OutputJSON {
		logs := ex.Result.Logs
		if logs == nil {
			logs = []string{}
		}
		data, err := report.JSON(runOutput{
			RunID:    ex.ID,
			Script:   ex.Script,
			Value:    report.Normalize(ex.Result.Value),
			Logs:     logs,
			Entities: entities,
		}, true)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	if len(ex.Result.Logs) > 0 {
		if _, err := fmt.Fprintln(w, strings.Join(ex.Result.Logs, "\n")); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return report.Text(w, entities)
}
