package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/agentstation/chatmodels/pkg/catalogs"
)

// ModelsToTableData converts models to table format. Wide output adds the
// hosted deployment ID and platform link.
func ModelsToTableData(models []catalogs.LLM, wide bool) Data {
	headers := []string{"Provider", "Model ID", "Name", "Vision", "Context", "Input Price"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignCenter, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Hosted ID", "Platform Link")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		row := []string{
			m.Provider.String(),
			m.ModelID,
			m.ModelName,
			FormatBool(m.ImageInput),
			FormatContext(m.MaxContext),
			FormatPrice(m.Pricing),
		}
		if wide {
			row = append(row, orDash(m.HostedID), orDash(m.PlatformLink))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// EnvKeysToTableData converts an EnvKeyMap to a provider/enabled table in
// canonical provider order. Providers absent from m are omitted.
func EnvKeysToTableData(m catalogs.EnvKeyMap) Data {
	rows := make([][]string, 0, len(m))
	for _, p := range catalogs.Providers() {
		enabled, ok := m[p]
		if !ok {
			continue
		}
		rows = append(rows, []string{p.String(), p.DisplayName(), FormatBool(enabled)})
	}
	return Data{
		Headers:         []string{"Provider", "Name", "Env Key"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter},
	}
}

// Write renders data in format to w. Table formats use tableData, every
// other format serializes raw.
func Write(w io.Writer, format Format, raw any, tableData func(wide bool) Data) error {
	if format.IsTable() && tableData != nil {
		return NewFormatter(format).Format(w, tableData(format == FormatWide))
	}
	return NewFormatter(format).Format(w, raw)
}

// FormatContext formats a context window in tokens.
func FormatContext(tokens int64) string {
	switch {
	case tokens <= 0:
		return "-"
	case tokens >= 1_000_000 && tokens%1_000_000 == 0:
		return strconv.FormatInt(tokens/1_000_000, 10) + "M"
	case tokens >= 1_000:
		return fmt.Sprintf("%.0fK", float64(tokens)/1_000)
	default:
		return strconv.FormatInt(tokens, 10)
	}
}

// FormatPrice formats input pricing, e.g. "$0.50/1M".
func FormatPrice(p *catalogs.Pricing) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f/%s", p.InputCost, p.Unit)
}

// FormatBool renders a checkmark for true.
func FormatBool(b bool) string {
	if b {
		return "✓"
	}
	return "-"
}

// SortModels orders models by provider, then model ID.
func SortModels(models []catalogs.LLM) {
	sort.SliceStable(models, func(i, j int) bool {
		if models[i].Provider != models[j].Provider {
			return models[i].Provider < models[j].Provider
		}
		return models[i].ModelID < models[j].ModelID
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
