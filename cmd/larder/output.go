package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"larder/internal/catalog"
	"larder/internal/consolidate"
)

const (
	formatPlain    = "plain"
	formatTable    = "table"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

const markdownWrap = 80

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeMarkdown prints md, styled through glamour when w is a terminal.
func writeMarkdown(w io.Writer, md string) error {
	if !isTerminal(w) {
		_, err := io.WriteString(w, md)
		return err
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(markdownWrap))
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	styled, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, styled)
	return err
}

func renderRecipeList(w io.Writer, format string, recipes []catalog.Recipe) error {
	switch format {
	case formatJSON:
		if recipes == nil {
			recipes = []catalog.Recipe{}
		}
		return writeJSON(w, recipes)
	case formatTable:
		rows := make([]table.Row, 0, len(recipes))
		for _, r := range recipes {
			rows = append(rows, recipeRow(r))
		}
		return writeTable(w, recipeColumns, rows)
	case formatMarkdown:
		var b strings.Builder
		b.WriteString("# Recipes\n\n")
		for _, r := range recipes {
			fmt.Fprintf(&b, "- **%s** (#%d, %s)\n", r.Name, r.ID, plural(len(r.Lines), "ingredient"))
		}
		return writeMarkdown(w, b.String())
	default:
		var b strings.Builder
		for _, r := range recipes {
			b.WriteString(r.Name)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
}

func renderRecipe(w io.Writer, format string, r catalog.Recipe) error {
	switch format {
	case formatJSON:
		return writeJSON(w, r)
	case formatTable:
		rows := make([]table.Row, 0, len(r.Lines))
		for i, line := range r.Lines {
			rows = append(rows, lineRow(i+1, line))
		}
		fmt.Fprintf(w, "%s (#%d)\n", r.Name, r.ID)
		return writeTable(w, lineColumns, rows)
	case formatMarkdown:
		var b strings.Builder
		fmt.Fprintf(&b, "# %s\n\n", r.Name)
		for _, line := range r.Lines {
			fmt.Fprintf(&b, "- %s\n", line.String())
		}
		return writeMarkdown(w, b.String())
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%s (#%d)\n", r.Name, r.ID)
		for _, line := range r.Lines {
			fmt.Fprintf(&b, "  %s\n", line.String())
		}
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
}

// renderItems prints grocery items. Unsaved items (ID 0) are shown without
// ids or checkboxes.
func renderItems(w io.Writer, format, title string, items []catalog.GroceryItem) error {
	switch format {
	case formatJSON:
		if items == nil {
			items = []catalog.GroceryItem{}
		}
		return writeJSON(w, items)
	case formatTable:
		rows := make([]table.Row, 0, len(items))
		for _, item := range items {
			rows = append(rows, itemRow(item))
		}
		return writeTable(w, itemColumns, rows)
	case formatMarkdown:
		return writeMarkdown(w, itemsMarkdown(title, items))
	default:
		var b strings.Builder
		for _, item := range items {
			if item.ID != 0 {
				fmt.Fprintf(&b, "%d [%s] ", item.ID, checkMark(item.Acquired))
			}
			b.WriteString(item.String())
			if item.Section != "" {
				fmt.Fprintf(&b, " (%s)", item.Section)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
}

// itemsMarkdown builds a checklist grouped by section in first-seen order;
// items without a section come last.
func itemsMarkdown(title string, items []catalog.GroceryItem) string {
	var (
		order    []string
		bySection = make(map[string][]catalog.GroceryItem)
	)
	for _, item := range items {
		if _, ok := bySection[item.Section]; !ok && item.Section != "" {
			order = append(order, item.Section)
		}
		bySection[item.Section] = append(bySection[item.Section], item)
	}
	if len(bySection[""]) > 0 {
		order = append(order, "")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	for _, section := range order {
		heading := section
		if heading == "" {
			heading = "other"
		}
		if len(order) > 1 || section != "" {
			fmt.Fprintf(&b, "\n## %s\n", strings.ToUpper(heading[:1])+heading[1:])
		}
		b.WriteString("\n")
		for _, item := range bySection[section] {
			box := " "
			if item.Acquired {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", box, item.String())
		}
	}
	return b.String()
}

// renderPlan prints each consolidated item with the recipe lines it came from.
func renderPlan(w io.Writer, format string, recipes []catalog.Recipe, groups []consolidate.Group) error {
	if format == formatJSON {
		type source struct {
			Recipe string `json:"recipe"`
			Line   string `json:"line"`
		}
		type entry struct {
			Item    catalog.GroceryItem `json:"item"`
			Key     string              `json:"key"`
			Sources []source            `json:"sources"`
		}
		out := make([]entry, 0, len(groups))
		for _, g := range groups {
			e := entry{Item: g.Item, Key: g.Key.String()}
			for _, ref := range g.Lines {
				e.Sources = append(e.Sources, source{
					Recipe: recipes[ref.Recipe].Name,
					Line:   recipes[ref.Recipe].Lines[ref.Line].String(),
				})
			}
			out = append(out, e)
		}
		return writeJSON(w, out)
	}

	var b strings.Builder
	for _, g := range groups {
		b.WriteString(g.Item.String())
		b.WriteString("\n")
		for _, ref := range g.Lines {
			fmt.Fprintf(&b, "    <- %s: %s\n", recipes[ref.Recipe].Name, recipes[ref.Recipe].Lines[ref.Line].String())
		}
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func idString(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func checkMark(acquired bool) string {
	if acquired {
		return "x"
	}
	return " "
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
