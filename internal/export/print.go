// Package export は照合結果の印刷用HTMLとExcel出力を生成する。
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rkonno1123-creator/bougu-check-app/internal/model"
	"github.com/rkonno1123-creator/bougu-check-app/internal/service/reconcile"
)

// printTemplate 印刷画面用の単体HTML
var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"displayDate": DisplayDate,
	"glyph":       statusGlyph,
	"totalText":   totalText,
	"breakdown":   breakdownText,
}).Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<title>防護具照合結果</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; padding: 20px; font-size: 12px; }
  h1 { font-size: 18px; margin-bottom: 20px; }
  .stats { display: flex; gap: 20px; margin-bottom: 20px; }
  .stat-box { padding: 10px 20px; border: 1px solid #ccc; border-radius: 4px; }
  .stat-box.ok { background: #dcfce7; }
  .stat-box.warning { background: #fef3c7; }
  table { width: 100%; border-collapse: collapse; font-size: 11px; }
  th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: center; }
  th { background: #f3f4f6; }
  .bg-bogoufuku { background: #fef3c7; }
  .bg-tebukuro { background: #dbeafe; }
  .bg-kyuushukan { background: #d1fae5; }
  .ok { color: green; }
  .warning { color: orange; font-weight: bold; }
  .breakdown { font-size: 10px; color: #666; white-space: pre-line; }
  @media print { body { padding: 0; } }
</style>
</head>
<body>
<h1>防護具照合結果</h1>
<div class="stats">
  <div class="stat-box">日数: {{.Stats.Dates}}</div>
  <div class="stat-box ok">OK: {{.Stats.OK}}</div>
  <div class="stat-box warning">要確認: {{.Stats.Warning}}</div>
  <div class="stat-box">未入力: {{.Stats.Unchecked}}</div>
</div>
<table>
  <thead>
    <tr>
      <th rowspan="2">日付</th>
      {{- range .Items}}
      <th colspan="3" class="bg-{{.}}">{{.Label}}</th>
      {{- end}}
    </tr>
    <tr>
      {{- range .Items}}
      <th>入力</th><th>Excel</th><th>結果</th>
      {{- end}}
    </tr>
  </thead>
  <tbody>
    {{- range .Rows}}
    <tr>
      <td>{{displayDate .Date}}</td>
      {{- range .Cells}}
      <td>{{totalText .}}{{if eq .Status "warning"}}<br><span class="breakdown">{{breakdown .}}</span>{{end}}</td>
      <td>{{.Reference}}</td>
      <td class="{{.Status}}">{{glyph .Status}}</td>
      {{- end}}
    </tr>
    {{- end}}
  </tbody>
</table>
<p>出力日時: {{.GeneratedAt}}</p>
</body>
</html>
`))

type printData struct {
	Stats       reconcile.Stats
	Items       []model.Item
	Rows        []reconcile.DateReport
	GeneratedAt string
}

// PrintHTML 印刷用の単体HTMLドキュメントを生成する
func PrintHTML(ref *model.ReferenceDataset, inputs model.Inputs, vendors []model.Vendor) ([]byte, error) {
	data := printData{
		Stats:       reconcile.Summarize(ref, inputs, vendors),
		Items:       model.Items(),
		Rows:        reconcile.Report(ref, inputs, vendors),
		GeneratedAt: time.Now().Format("2006/01/02 15:04"),
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("印刷HTMLの生成に失敗: %w", err)
	}
	return buf.Bytes(), nil
}

// DisplayDate ISO日付を M/D 表示にする
func DisplayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

func statusGlyph(s reconcile.Status) string {
	switch s {
	case reconcile.StatusOK:
		return "✓"
	case reconcile.StatusWarning:
		return "⚠"
	}
	return "-"
}

// totalText 未入力は「-」、入力ありは合計値（原典と同じく合計0も「-」表示）
func totalText(c reconcile.CellReport) string {
	if c.Total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", c.Total)
}

func breakdownText(c reconcile.CellReport) string {
	parts := make([]string, 0, len(c.Breakdown))
	for _, s := range c.Breakdown {
		parts = append(parts, fmt.Sprintf("%s:%d", s.Label, s.Value))
	}
	return strings.Join(parts, " ")
}
