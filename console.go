package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ullaakut/disgo"
	"github.com/ullaakut/disgo/style"
	"github.com/ullaakut/stargazers/pkg/visualize"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
	"gopkg.in/natefinch/lumberjack.v2"
)

const repositoryPrompt = "Enter the GitHub repository (format: owner/repo): "

// setupLogging configures the terminal output. When a log file is given, the
// output is duplicated into it without colors.
func setupLogging(out io.Writer, verbose bool, logFile string) (io.Closer, error) {
	if logFile == "" {
		disgo.SetTerminalOptions(disgo.WithColors(true), disgo.WithDebug(verbose))
		return nil, nil
	}

	logger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}

	output := io.MultiWriter(out, logger)
	disgo.SetTerminalOptions(
		disgo.WithColors(false),
		disgo.WithDebug(verbose),
		disgo.WithDefaultOutput(output),
		disgo.WithErrorOutput(output),
	)

	return logger, nil
}

// promptRepository asks for the repository to fetch on in.
func promptRepository(in io.Reader) (string, error) {
	disgo.Infof(repositoryPrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("unable to read repository: %v", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no repository given")
	}

	return line, nil
}

// selectDataset lists the datasets and asks for one of them until the
// answer is a valid number.
func selectDataset(in io.Reader, datasets []visualize.Dataset) (visualize.Dataset, error) {
	disgo.Infoln("Available datasets:")
	for idx, dataset := range datasets {
		disgo.Infof("  %d. %s\n", idx+1, dataset.Repository())
	}

	reader := bufio.NewReader(in)
	for {
		disgo.Infof("Select a dataset (1-%d): ", len(datasets))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return visualize.Dataset{}, errors.New("no dataset selected")
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && choice >= 1 && choice <= len(datasets) {
			return datasets[choice-1], nil
		}

		disgo.Errorln(style.Failure(style.SymbolCross, " Invalid selection, please enter a number between 1 and ", len(datasets)))
		if err != nil {
			return visualize.Dataset{}, errors.New("no dataset selected")
		}
	}
}

func setupProgressBar(out io.Writer, total int) (*mpb.Progress, *mpb.Bar) {
	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(out))

	bar := p.AddBar(int64(total),
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: "),
			decor.AverageETA(decor.ET_STYLE_GO),
			decor.Name(" Elapsed: "),
			decor.Elapsed(decor.ET_STYLE_GO),
			decor.Name(" Progress: "),
			decor.Percentage()),
	)

	return p, bar
}
