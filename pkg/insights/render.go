package insights

import (
	"fmt"
	"strings"

	"github.com/ullaakut/disgo"
	"github.com/ullaakut/disgo/style"
)

const (
	// Stargazers                           Mean            Median
	// ----------                           ----            ------
	headerFormat = "\n%s<TAB>%s<TAB>%s\n%s<TAB>%s<TAB>%s\n"

	// Followers:                           127             12
	factorsFormat = "%s:<TAB>%s<TAB>%s\n"

	// Hireable:                                            23%
	shareFormat = "%s:<TAB>%s\n"

	// Length of the `Stargazers` column.
	firstColumnLength = 35

	// Length of the `Mean` column.
	secondColumnLength = 15
)

// Render prints a report.
func Render(report *Report) {
	if report == nil {
		disgo.Errorln(style.Failure(style.SymbolCross, " No report to render."))
		return
	}

	printHeader()

	for _, factorName := range factors {
		printFactor(string(factorName), report.Factors[factorName])
	}

	if report.Percentiles != nil {
		for _, percentile := range percentiles {
			printPercentile(percentile, report.Percentiles[percentile])
		}
	}

	disgo.Infoln(generateUnderline(firstColumnLength + secondColumnLength + 8))
	printShare("Hireable", report.Hireable)
	printShare("With a location", report.Located)
	printShare(fmt.Sprintf("Stargazers (%d)", report.Stargazers), 1)
}

// printHeader prints the header containing each category name and underlines them.
func printHeader() {
	headerNames := []string{
		"Stargazers",
		"Mean",
		"Median",
	}

	var underlines []string
	for _, headerName := range headerNames {
		underlines = append(underlines, generateUnderlineFromHeader(headerName))
	}

	// Tabulate headers properly depending on column lengths.
	format := tabulateFormat(headerFormat, headerNames[0], firstColumnLength+1)
	format = tabulateFormat(format, headerNames[1], secondColumnLength)
	format = tabulateFormat(format, underlines[0], firstColumnLength+1)
	format = tabulateFormat(format, underlines[1], secondColumnLength)

	disgo.Infof(
		format,
		style.Important(headerNames[0]), style.Important(headerNames[1]), style.Important(headerNames[2]),
		underlines[0], underlines[1], underlines[2],
	)
}

// printFactor prints a factor in the following format:
// FactorName:                  Mean             Median
func printFactor(factorName string, factor Factor) {
	mean := fmt.Sprintf("%1.f", factor.Mean)

	format := tabulateFormat(factorsFormat, factorName, firstColumnLength)
	format = tabulateFormat(format, mean, secondColumnLength)

	disgo.Infof(format, factorName, mean, fmt.Sprintf("%1.f", factor.Median))
}

// printPercentile prints a percentile of followers in the following format:
// xth percentile of followers:                      Value
func printPercentile(percentile Percentile, value float64) {
	name := fmt.Sprintf("%sth percentile of followers", percentile)

	format := tabulateFormat(shareFormat, name, firstColumnLength+secondColumnLength+1)
	disgo.Infof(format, name, fmt.Sprintf("%1.f", value))
}

// printShare prints a share of stargazers in the following format:
// Name:                                         Share%
func printShare(name string, share float64) {
	format := tabulateFormat(shareFormat, name, firstColumnLength+secondColumnLength+1)
	disgo.Infof(format, name, style.Important(fmt.Sprintf("%4.f%%", share*100)))
}

// tabulateFormat inserts spaces in formatting strings depending on variable name lengths.
func tabulateFormat(formatString, variableName string, columnLength int) string {
	var spaces string
	for i := len(variableName); i <= columnLength; i++ {
		spaces = fmt.Sprint(spaces, " ")
	}

	return strings.Replace(formatString, "<TAB>", spaces, 1)
}

// generateUnderlineFromHeader generates a string of dashes of equal
// length to the header name it's given, in order to underline it.
func generateUnderlineFromHeader(headerName string) string {
	return generateUnderline(len(headerName))
}

// generateUnderline generates a string of dashes of a given length.
func generateUnderline(length int) string {
	return strings.Repeat("-", length)
}
