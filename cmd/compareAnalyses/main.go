package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"CompareAnalyses/pkg/compare"
	"CompareAnalyses/pkg/wechatwork"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, writes the report to stdout and returns the exit code
func run(prog string, args []string, stdout, stderr io.Writer) int {
	t0 := time.Now()
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, nil)))

	cfg, err := LoadConfig()
	if err != nil {
		fmtUtil.Fprintf(stderr, "%s: %v\n", prog, err)
		return 2
	}

	var flags = flag.NewFlagSet(prog, flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		dir1 = flags.String(
			"dir1",
			"",
			"batch 1 directory",
		)
		dir2 = flags.String(
			"dir2",
			"",
			"batch 2 directory",
		)
		sample1 = flags.String(
			"sample1",
			"",
			"sample 1 name",
		)
		sample2 = flags.String(
			"sample2",
			"",
			"sample 2 name",
		)
		first = flags.Bool(
			"first",
			cfg.First,
			"use the first file when several match a sample, default is an error",
		)
		xlsx = flags.String(
			"xlsx",
			cfg.Xlsx,
			"also write report to xlsx",
		)
		html = flags.String(
			"html",
			cfg.HTML,
			"also write bar chart to html",
		)
		png = flags.String(
			"png",
			cfg.PNG,
			"also write bar chart to png",
		)
		webhook = flags.String(
			"webhook",
			cfg.Webhook,
			"wechatwork webhook key for notification",
		)
	)
	if err = flags.Parse(args); err == flag.ErrHelp {
		return 0
	} else if err != nil {
		return 2
	}
	if flags.NArg() > 0 {
		fmtUtil.Fprintf(stderr, "%s: unexpected arguments: %v\n", prog, flags.Args())
		return 2
	}
	if *dir1 == "" || *dir2 == "" || *sample1 == "" || *sample2 == "" {
		flags.PrintDefaults()
		fmtUtil.Fprintf(stderr, "%s: -dir1/-dir2/-sample1/-sample2 required!\n", prog)
		return 2
	}

	report, err := compare.Run(*dir1, *dir2, *sample1, *sample2, stdout, compare.Options{FirstMatch: *first})
	if err != nil {
		fmtUtil.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}

	if err = export(report, *xlsx, *html, *png); err != nil {
		fmtUtil.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}

	var sender = wechatwork.NewNotificationSender(*webhook)
	if err = sender.SendMarkdown(markdown(report)); err != nil {
		// the report is already written
		slog.Error("notification", "err", err)
	}

	slog.Info("Done", "time", time.Since(t0))
	return 0
}

func export(report *compare.Report, xlsx, html, png string) error {
	if xlsx != "" {
		if err := report.WriteXlsx(xlsx); err != nil {
			return fmt.Errorf("write %s: %w", xlsx, err)
		}
		slog.Info("WriteXlsx", "path", xlsx)
	}
	if html != "" {
		if err := writeHTML(report, html); err != nil {
			return fmt.Errorf("write %s: %w", html, err)
		}
		slog.Info("PlotHTML", "path", html)
	}
	if png != "" {
		if err := report.PlotPNG(png); err != nil {
			return fmt.Errorf("write %s: %w", png, err)
		}
		slog.Info("PlotPNG", "path", png)
	}
	return nil
}

func writeHTML(report *compare.Report, path string) error {
	output, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = report.PlotHTML(output); err != nil {
		output.Close()
		return err
	}
	return output.Close()
}

func markdown(report *compare.Report) string {
	var content = fmt.Sprintf("**compareAnalyses** %s vs %s\n", report.Sample1, report.Sample2)
	for _, section := range report.Sections() {
		content += fmt.Sprintf("> %s: <font color=\"info\">%d</font>\n", section.Title, section.Set.Len())
	}
	return content
}
