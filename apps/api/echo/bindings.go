package echoapi

import (
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/walimuhq/walimu/core"
	"github.com/walimuhq/walimu/core/teacher"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

// Bind reads the `ordering` query param: comma-separated field names,
// "-" prefix for descending (e.g. `ordering=-rating,name`).
func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.Ordering{Field: field, Ascending: !descending})
	}
}

// Apply sorts the teachers by the bound orderings, last ordering first
// so the first one wins. Unknown fields are ignored; stable sorts keep
// the roster order on ties.
func (ord *Ordering) Apply(teachers []teacher.Teacher) {
	for i := len(ord.Orderings) - 1; i >= 0; i-- {
		o := ord.Orderings[i]
		less := lessFunc(teachers, o.Field)
		if less == nil {
			continue
		}
		if o.Ascending {
			sort.SliceStable(teachers, less)
		} else {
			sort.SliceStable(teachers, func(a, b int) bool { return less(b, a) })
		}
	}
}

func lessFunc(teachers []teacher.Teacher, field string) func(i, j int) bool {
	switch field {
	case "name":
		return func(i, j int) bool { return teachers[i].Name < teachers[j].Name }
	case "rating":
		return func(i, j int) bool { return teachers[i].Performance.Rating < teachers[j].Performance.Rating }
	case "experience":
		return func(i, j int) bool { return teachers[i].Experience < teachers[j].Experience }
	case "created_at":
		return func(i, j int) bool { return teachers[i].CreatedAt.Before(teachers[j].CreatedAt) }
	}
	return nil
}
