package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	ptypes "github.com/MetalBlueberry/go-plotly/pkg/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"

	"github.com/worktif/purem-benchmarks/analysis"
	"github.com/worktif/purem-benchmarks/support/xslices"
)

// HTMLFileName is the name of the interactive report within the output
// directory.
const HTMLFileName = "benchmarks_plots.html"

// plotlyCDN is the Plotly release the single-file HTML page loads.
const plotlyCDN = "https://cdn.plot.ly/plotly-2.34.0.min.js"

// WriteHTML renders the per-metric series and the acceleration series as
// Plotly figures embedded in one self-contained HTML page.
func WriteHTML(df dataframe.DataFrame, accel []analysis.AccelerationSeries, dir string) (string, error) {
	var figures [][]byte
	for _, metric := range Metrics {
		fig := newLogFig(fmt.Sprintf("%s vs Size", strings.ToUpper(metric)), metric != analysis.ColStddev)
		for _, funcName := range analysis.FunctionNames(df) {
			rows := analysis.FilterByFunc(df, funcName)
			fig.Data = append(fig.Data, &grob.Scatter{
				Name: ptypes.S(funcName),
				Mode: "lines+markers",
				X:    ptypes.DataArray(rows.Col(analysis.ColSize).Float()),
				Y:    ptypes.DataArray(rows.Col(metric).Float()),
			})
		}
		serialized, err := json.Marshal(fig)
		if err != nil {
			return "", errors.Wrapf(err, "failed to marshal the %s figure", metric)
		}
		figures = append(figures, serialized)
	}

	accelFig := newLogFig("Acceleration Relative to Other Libraries", true)
	for _, s := range accel {
		accelFig.Data = append(accelFig.Data, &grob.Scatter{
			Name: ptypes.S(fmt.Sprintf("%s vs %s", s.Baseline, s.Func)),
			Mode: "lines+markers",
			X:    ptypes.DataArray(xslices.Map(s.Sizes, func(size int) float64 { return float64(size) })),
			Y:    ptypes.DataArray(s.Ratios),
		})
	}
	serialized, err := json.Marshal(accelFig)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal the acceleration figure")
	}
	figures = append(figures, serialized)

	path := filepath.Join(dir, HTMLFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create HTML report %q", path)
	}
	defer func() { _ = f.Close() }()
	if err := writePlotlyHTML(f, figures...); err != nil {
		return "", err
	}
	return path, nil
}

func newLogFig(title string, logY bool) *grob.Fig {
	yAxis := &grob.LayoutYaxis{Showgrid: ptypes.B(true)}
	if logY {
		yAxis.Type = grob.LayoutYaxisTypeLog
	}
	return &grob.Fig{
		Layout: &grob.Layout{
			Title: &grob.LayoutTitle{Text: ptypes.S(title)},
			Xaxis: &grob.LayoutXaxis{
				Showgrid: ptypes.B(true),
				Type:     grob.LayoutXaxisTypeLog,
			},
			Yaxis: yAxis,
		},
	}
}

var (
	singleFileHTML = `<!DOCTYPE html>
	<head>
		<meta charset="utf-8">
		<script src="{{ .CDN }}"></script>
	</head>
	<body>
{{- range $i, $f := .Figures }}
		<div id="plot{{ $i }}"></div>
		{{ if not (eq $i (lastIdx $.Figures)) }}
		<hr>
		{{ end }}
{{- end }}
	<script>
{{- range $i, $f := .Figures }}
		data = JSON.parse(atob('{{ $f }}'))
		Plotly.newPlot('plot{{ $i }}', data);
{{- end }}
	</script>
	</body>
</html>`
	singleFileHTMLTmpl = template.Must(template.New("plotly").Funcs(template.FuncMap{
		"lastIdx": func(a []string) int { return len(a) - 1 },
	}).Parse(singleFileHTML))
)

// writePlotlyHTML renders Plotly figures (given as JSON) into a single HTML
// page that loads Plotly from its CDN.
func writePlotlyHTML(w io.Writer, figuresAsJSON ...[]byte) error {
	data := &struct {
		CDN     string
		Figures []string
	}{
		CDN: plotlyCDN,
		Figures: xslices.Map(figuresAsJSON, func(fig []byte) string {
			return base64.StdEncoding.EncodeToString(fig)
		}),
	}
	if err := singleFileHTMLTmpl.Execute(w, data); err != nil {
		return errors.Wrap(err, "failed to render the Plotly HTML report")
	}
	return nil
}
