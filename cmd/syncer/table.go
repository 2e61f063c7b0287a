package main

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"seconddraft/internal/domain"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func summaryTable(summary *domain.SyncSummary) string {
	rows := make([][]string, 0, len(summary.Stats))
	for _, st := range summary.Stats {
		rows = append(rows, []string{
			st.CollectionID,
			strconv.Itoa(st.Viewable),
			strconv.Itoa(st.Existing),
			strconv.Itoa(st.New),
			strconv.Itoa(st.Errors),
			strconv.Itoa(st.PostCount),
			st.Duration.Round(time.Millisecond).String(),
		})
	}
	return renderTable(
		[]string{"Collection", "Viewable", "Existing", "New", "Errors", "Posts", "Took"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}

func collectionsTable(collections []domain.CollectionMetadata) string {
	rows := make([][]string, 0, len(collections))
	for _, c := range collections {
		rows = append(rows, []string{c.ID, c.Name, strconv.Itoa(c.PostCount), c.LastSync})
	}
	return renderTable(
		[]string{"ID", "Name", "Posts", "Last sync"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func postsTable(docs []*domain.RenderedDocument) string {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{d.PostID, d.Title, d.PublishedAt, text.Trim(d.Description, 60)})
	}
	return renderTable(
		[]string{"Post", "Title", "Published", "Description"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	)
}
