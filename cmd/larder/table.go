package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"larder/internal/catalog"
)

// column describes one table column. Numeric columns are right aligned.
type column struct {
	title   string
	numeric bool
}

var (
	recipeColumns    = []column{{"ID", true}, {"Recipe", false}, {"Ingredients", true}}
	lineColumns      = []column{{"#", true}, {"Qty", true}, {"Unit", false}, {"Ingredient", false}}
	checklistColumns = []column{{"ID", true}, {"Staple", false}}
	itemColumns      = []column{{"ID", true}, {"Item", false}, {"Qty", true}, {"Unit", false}, {"Section", false}, {"Got", false}}
)

func recipeRow(r catalog.Recipe) table.Row {
	return table.Row{r.ID, r.Name, len(r.Lines)}
}

func lineRow(n int, line catalog.IngredientLine) table.Row {
	return table.Row{n, catalog.QuantityString(line.Quantity), catalog.UnitString(line.Unit), line.Name}
}

func itemRow(item catalog.GroceryItem) table.Row {
	return table.Row{
		idString(item.ID),
		item.Name,
		catalog.QuantityString(item.Quantity),
		catalog.UnitString(item.Unit),
		item.Section,
		checkMark(item.Acquired),
	}
}

// writeTable draws rows under columns with rounded borders and a trailing
// count footer when there is more than one row.
func writeTable(w io.Writer, columns []column, rows []table.Row) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.title
		align := text.AlignLeft
		if c.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	tw.AppendRows(rows)
	if len(rows) > 1 {
		footer := make(table.Row, len(columns))
		footer[0] = plural(len(rows), "row")
		tw.AppendFooter(footer)
	}

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
