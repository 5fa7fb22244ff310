// Package render converts Result values into human-readable or machine-parseable
// output. Each format is a separate function; the top-level Render dispatcher
// selects based on the format string.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/derickschaefer/reel/internal/model"
	"github.com/derickschaefer/reel/internal/tmdb"
	"github.com/derickschaefer/reel/internal/util"
	"github.com/olekukonko/tablewriter"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatMD    = "md"
)

// Formats lists every accepted --format value.
var Formats = []string{FormatTable, FormatJSON, FormatJSONL, FormatCSV, FormatTSV, FormatMD}

// ValidFormat reports whether f is an accepted --format value.
func ValidFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}

// Render writes result to w in the specified format.
func Render(w io.Writer, result *model.Result, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatJSONL:
		return renderJSONL(w, result)
	case FormatCSV:
		return renderDelimited(w, result, ',')
	case FormatTSV:
		return renderDelimited(w, result, '\t')
	case FormatMD:
		return renderMarkdown(w, result)
	default:
		return renderTable(w, result)
	}
}

// RenderTo writes to stdout by default; if path is non-empty, writes to file.
func RenderTo(path string, result *model.Result, format string) error {
	if path == "" {
		return Render(os.Stdout, result, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return Render(f, result, format)
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func renderJSON(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ─── JSONL ────────────────────────────────────────────────────────────────────

// jsonlRow is the canonical JSONL record for a movie. Its field names match
// the catalog service so `reel sort` can read the stream back.
type jsonlRow struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	Rating      *float64 `json:"vote_average"`
	PosterPath  string   `json:"poster_path"`
	PosterURL   string   `json:"poster_url,omitempty"`
}

func renderJSONL(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	switch result.Kind {
	case model.KindMovieList:
		list, ok := result.Data.(*model.MovieList)
		if !ok {
			return renderJSON(w, result)
		}
		for _, m := range list.Movies {
			row := jsonlRow{
				ID:          m.ID,
				Title:       m.Title,
				ReleaseDate: m.ReleaseDate,
				Rating:      m.Rating,
				PosterPath:  m.PosterPath,
				PosterURL:   tmdb.ImageURL(list.ImageBaseURL, m.PosterPath),
			}
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	case model.KindSortKeys:
		keys, ok := result.Data.([]model.SortKey)
		if !ok {
			return enc.Encode(result.Data)
		}
		for _, k := range keys {
			if err := enc.Encode(map[string]string{"key": k.String(), "label": k.Label()}); err != nil {
				return err
			}
		}
		return nil
	default:
		return enc.Encode(result.Data)
	}
}

// ─── Table ────────────────────────────────────────────────────────────────────

func renderTable(w io.Writer, result *model.Result) error {
	switch result.Kind {
	case model.KindMovieList:
		list, ok := result.Data.(*model.MovieList)
		if !ok {
			return fmt.Errorf("unexpected data type for movie_list")
		}
		return renderMovieTable(w, list)
	case model.KindSortKeys:
		keys, ok := result.Data.([]model.SortKey)
		if !ok {
			return fmt.Errorf("unexpected data type for sort_keys")
		}
		return renderSortKeyTable(w, keys)
	default:
		// Fallback: JSON
		return renderJSON(w, result)
	}
}

// Caption describes what a list holds, e.g. `Search "dune" • Rating (Desc)`.
func Caption(list *model.MovieList) string {
	var head string
	switch {
	case list.Mode == model.ModeSearch:
		head = fmt.Sprintf("Search %q", list.Query)
	case list.Mode == model.ModeBrowse:
		head = "Browse"
	default:
		head = "Movies"
	}
	if list.Sort != "" && list.Sort != model.SortNone {
		head += " • " + list.Sort.Label()
	}
	return head
}

// PageLine is the pager caption, "Page N - total".
func PageLine(page, totalPages int) string {
	return fmt.Sprintf("Page %d - %d", page, totalPages)
}

func renderMovieTable(w io.Writer, list *model.MovieList) error {
	fmt.Fprintf(w, "%s\n\n", Caption(list))

	if len(list.Movies) == 0 {
		fmt.Fprintln(w, "No results.")
	} else {
		tw := tablewriter.NewWriter(w)
		tw.SetHeader([]string{"ID", "TITLE", "RELEASE", "RATING", "POSTER"})
		tw.SetBorder(true)
		tw.SetRowLine(false)
		tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		tw.SetAlignment(tablewriter.ALIGN_LEFT)
		tw.SetColumnAlignment([]int{
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_LEFT,
		})
		tw.SetAutoWrapText(false)

		for _, m := range list.Movies {
			poster := m.PosterPath
			if poster == "" {
				poster = util.Missing
			}
			tw.Append([]string{
				strconv.FormatInt(m.ID, 10),
				util.Truncate(util.DisplayTitle(m), 50),
				util.DisplayDate(m),
				util.DisplayRating(m),
				poster,
			})
		}
		tw.Render()
	}

	if list.Page > 0 {
		fmt.Fprintf(w, "\n%s\n", PageLine(list.Page, list.TotalPages))
	}
	return nil
}

func renderSortKeyTable(w io.Writer, keys []model.SortKey) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"KEY", "LABEL"})
	tw.SetBorder(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, k := range keys {
		tw.Append([]string{k.String(), k.Label()})
	}
	tw.Render()
	return nil
}

// ─── CSV / TSV ────────────────────────────────────────────────────────────────

func renderDelimited(w io.Writer, result *model.Result, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	switch result.Kind {
	case model.KindMovieList:
		list, ok := result.Data.(*model.MovieList)
		if !ok {
			return fmt.Errorf("unexpected data type for movie_list")
		}
		_ = cw.Write([]string{"id", "title", "release_date", "vote_average", "poster_path", "poster_url"})
		for _, m := range list.Movies {
			rating := ""
			if m.Rating != nil {
				rating = strconv.FormatFloat(*m.Rating, 'f', -1, 64)
			}
			_ = cw.Write([]string{
				strconv.FormatInt(m.ID, 10),
				m.Title,
				m.ReleaseDate,
				rating,
				m.PosterPath,
				tmdb.ImageURL(list.ImageBaseURL, m.PosterPath),
			})
		}
	case model.KindSortKeys:
		_ = cw.Write([]string{"key", "label"})
		if keys, ok := result.Data.([]model.SortKey); ok {
			for _, k := range keys {
				_ = cw.Write([]string{k.String(), k.Label()})
			}
		}
	default:
		// Fallback: serialize as JSON on a single line
		b, _ := json.Marshal(result.Data)
		_ = cw.Write([]string{string(b)})
	}

	cw.Flush()
	return cw.Error()
}

// ─── Markdown ─────────────────────────────────────────────────────────────────

func renderMarkdown(w io.Writer, result *model.Result) error {
	switch result.Kind {
	case model.KindMovieList:
		list, ok := result.Data.(*model.MovieList)
		if !ok {
			return renderJSON(w, result)
		}
		fmt.Fprintf(w, "**%s** (%s)\n\n", mdEscape(Caption(list)), PageLine(list.Page, list.TotalPages))
		fmt.Fprintf(w, "| ID | TITLE | RELEASE | RATING | POSTER |\n|----|----|----|----|----|\n")
		for _, m := range list.Movies {
			poster := util.Missing
			if url := tmdb.ImageURL(list.ImageBaseURL, m.PosterPath); url != "" {
				poster = fmt.Sprintf("[poster](%s)", url)
			}
			fmt.Fprintf(w, "| %d | %s | %s | %s | %s |\n",
				m.ID, mdEscape(util.DisplayTitle(m)), util.DisplayDate(m), util.DisplayRating(m), poster)
		}
		return nil
	case model.KindSortKeys:
		fmt.Fprintf(w, "| KEY | LABEL |\n|----|----|\n")
		if keys, ok := result.Data.([]model.SortKey); ok {
			for _, k := range keys {
				fmt.Fprintf(w, "| %s | %s |\n", k.String(), mdEscape(k.Label()))
			}
		}
		return nil
	default:
		return renderJSON(w, result)
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
