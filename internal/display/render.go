package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-town/internal/town"
)

// renderFuncs provides utility functions for templates.
var renderFuncs = func() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["coins"] = func(n int) string {
		return fmt.Sprintf("%d coins", n)
	}
	funcs["stack"] = func(r town.ItemRecord) string {
		return fmt.Sprintf("%-10s x%-4d %3d coins each", r.Name, r.Quantity, r.UnitPrice)
	}
	funcs["stackLine"] = stackLine
	return funcs
}()

// stackLine renders records inline: "apple x5, banana x3".
func stackLine(records []town.ItemRecord) string {
	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, fmt.Sprintf("%s x%d", r.Name, r.Quantity))
	}
	return strings.Join(parts, ", ")
}

var groceryTmpl = template.Must(template.New("grocery").Funcs(renderFuncs).Parse(
	`=== Grocery Store: {{ .ID }} ===
Occupants: {{ .Occupants | join ", " }}
Shelf:
{{- range .StoreInventory }}
  {{ stack . }}
{{- end }}
{{- if .Cart }}
Cart:
{{- range .Cart }}
  {{ stack . }}
{{- end }}
Total: {{ coins .TotalPrice }}
{{- end }}
Balance: {{ coins .Balance }}
{{- if .History }}
Past purchases: {{ len .History }}
{{- end }}`))

var tradingTmpl = template.Must(template.New("trading").Funcs(renderFuncs).Parse(
	`=== Trading Post: {{ .ID }} ===
Occupants: {{ .Occupants | join ", " }}
Board:
{{- range .TradingBoard }}
  [{{ .ID | trunc 8 }}] {{ .Initiator }} offers {{ stackLine .Offered }} for {{ stackLine .Wanted }}
{{- else }}
  (no open offers)
{{- end }}
{{- if .Inventory }}
Your items:
{{- range .Inventory }}
  {{ stack . }}
{{- end }}
{{- end }}`))

var inventoryTmpl = template.Must(template.New("inventory").Funcs(renderFuncs).Parse(
	`=== Inventory: {{ .ID }} ===
Occupants: {{ .Occupants | join ", " }}
{{- if .PlayerInventory }}
Your items:
{{- range .PlayerInventory }}
  {{ stack . }}
{{- end }}
{{- else }}
Your items: (empty)
{{- end }}`))

// RenderArea renders an area snapshot as wrapped console text.
func RenderArea(m *town.AreaModel) (string, error) {
	var tmpl *template.Template
	switch m.Type {
	case town.AreaKindGrocery:
		tmpl = groceryTmpl
	case town.AreaKindTrading:
		tmpl = tradingTmpl
	case town.AreaKindInventory:
		tmpl = inventoryTmpl
	default:
		return "", fmt.Errorf("no renderer for area type %q", m.Type)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("rendering %s area: %w", m.Type, err)
	}
	return Wrap(buf.String()), nil
}

// RenderMovement renders a movement event as a one-line notice.
func RenderMovement(e *town.MovementEvent) string {
	verb := "left"
	if e.Entered {
		verb = "entered"
	}
	return fmt.Sprintf("%s %s %s.", Capitalize(string(e.Player)), verb, e.Area)
}
