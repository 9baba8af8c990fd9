package dashboard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/magabrotheeeer/sales-reporting/internal/models"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
	kpiColor     = color.New(color.FgGreen)
)

// Render печатает состояние дашборда: KPI, лучших и худших менеджеров и регионы.
// При ошибке печатается только баннер с сообщением.
func Render(w io.Writer, s Snapshot) error {
	heading := headingColor.SprintFunc()
	_, _ = fmt.Fprintf(w, "%s %s\n", heading("Sales dashboard"), s.Period)

	if !s.OK() {
		_, _ = fmt.Fprintf(w, "%s\n", errorColor.Sprintf("error: %s", s.Err))
		return nil
	}

	kpi := kpiColor.SprintFunc()
	_, _ = fmt.Fprintf(w, "Total revenue:       %s\n", kpi(money(s.KPIs.TotalRevenue)))
	_, _ = fmt.Fprintf(w, "Top region:          %s\n", kpi(s.KPIs.TopRegion))
	_, _ = fmt.Fprintf(w, "Average top revenue: %s\n", kpi(money(s.KPIs.AverageTopRevenue)))
	_, _ = fmt.Fprintf(w, "Top performer:       %s (%s)\n", kpi(s.KPIs.TopPerformer), money(s.KPIs.TopPerformerRevenue))

	_, _ = fmt.Fprintf(w, "\n%s\n", heading("Top performers"))
	if err := renderReps(w, s.Top); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", heading("Bottom performers"))
	if err := renderReps(w, s.Bottom); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", heading("Sales by region"))
	return renderRegions(w, s.Regions)
}

// RenderRep печатает карточку одного менеджера.
func RenderRep(w io.Writer, r models.SalesRepRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	if err := table.Bulk([][]string{
		{"Rep ID", strconv.FormatInt(r.RepID, 10)},
		{"Name", repName(r)},
		{"Revenue", money(r.TotalRevenue)},
		{"Customers", strconv.FormatInt(r.CustomerCount, 10)},
	}); err != nil {
		return fmt.Errorf("failed to add rep rows: %w", err)
	}
	return table.Render()
}

func renderReps(w io.Writer, rows []models.SalesRepRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Rep ID", "Name", "Revenue", "Customers"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(rows))
	for i, r := range rows {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(r.RepID, 10),
			repName(r),
			money(r.TotalRevenue),
			strconv.FormatInt(r.CustomerCount, 10),
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add rep rows: %w", err)
	}
	return table.Render()
}

func renderRegions(w io.Writer, rows []models.RegionRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Region", "Sales"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{regionLabel(r.RegionName), money(r.TotalSales)})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add region rows: %w", err)
	}
	return table.Render()
}

func repName(r models.SalesRepRow) string {
	if r.FullName == nil || *r.FullName == "" {
		return NoValue
	}
	return *r.FullName
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
