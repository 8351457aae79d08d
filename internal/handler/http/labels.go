package http

import "github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"

const defaultLanguage = "ja"

var supportedLanguages = []string{"ja", "en"}

var salaryTypeNames = map[string]map[payroll.SalaryType]string{
	"ja": {
		payroll.SalaryTypeHourly:       "時給",
		payroll.SalaryTypeDailyMonthly: "日給月給",
		payroll.SalaryTypeFixed:        "固定給",
	},
	"en": {
		payroll.SalaryTypeHourly:       "Hourly",
		payroll.SalaryTypeDailyMonthly: "Daily-monthly",
		payroll.SalaryTypeFixed:        "Fixed",
	},
}

type SalaryTypeLabel struct {
	Value payroll.SalaryType `json:"value"`
	Label string             `json:"label"`
}

// salaryTypeLabels lists the salary types in a fixed order.
func salaryTypeLabels(lang string) []SalaryTypeLabel {
	names := salaryTypeNames[lang]
	order := []payroll.SalaryType{payroll.SalaryTypeHourly, payroll.SalaryTypeDailyMonthly, payroll.SalaryTypeFixed}

	labels := make([]SalaryTypeLabel, 0, len(order))
	for _, t := range order {
		labels = append(labels, SalaryTypeLabel{Value: t, Label: names[t]})
	}
	return labels
}
