package model

import "fmt"

// ValueKind tags a UsageValue with how it must be rendered.
type ValueKind int

const (
	TokenCount ValueKind = iota
	CostAmount
	Percentage
	PlainCount
)

func (k ValueKind) String() string {
	switch k {
	case TokenCount:
		return "tokens"
	case CostAmount:
		return "cost"
	case Percentage:
		return "percent"
	case PlainCount:
		return "count"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseValueKind is the inverse of ValueKind.String.
func ParseValueKind(s string) (ValueKind, error) {
	switch s {
	case "tokens":
		return TokenCount, nil
	case "cost":
		return CostAmount, nil
	case "percent":
		return Percentage, nil
	case "count":
		return PlainCount, nil
	}
	return 0, fmt.Errorf("unknown value kind %q", s)
}

// UsageValue is an immutable numeric quantity with a kind tag.
type UsageValue struct {
	kind  ValueKind
	value float64
}

// Tokens wraps a token count.
func Tokens(n int64) UsageValue { return UsageValue{kind: TokenCount, value: float64(n)} }

// Cost wraps a currency amount in USD.
func Cost(c float64) UsageValue { return UsageValue{kind: CostAmount, value: c} }

// Percent wraps a percentage in the 0-100 range.
func Percent(p float64) UsageValue { return UsageValue{kind: Percentage, value: p} }

// Count wraps a plain integer count.
func Count(n int64) UsageValue { return UsageValue{kind: PlainCount, value: float64(n)} }

func (v UsageValue) Kind() ValueKind { return v.kind }
func (v UsageValue) Float() float64  { return v.value }
func (v UsageValue) Int() int64      { return int64(v.value) }

func (v UsageValue) String() string {
	return fmt.Sprintf("%s(%g)", v.kind, v.value)
}

// ReportShape selects which rows a report groups usage into.
type ReportShape string

const (
	ShapeToday   ReportShape = "today"
	ShapeHourly  ReportShape = "hourly"
	ShapeDaily   ReportShape = "daily"
	ShapeWeekly  ReportShape = "weekly"
	ShapeMonthly ReportShape = "monthly"
)

// Shapes lists every supported report shape in display order.
var Shapes = []ReportShape{ShapeToday, ShapeHourly, ShapeDaily, ShapeWeekly, ShapeMonthly}

// Title is the heading shown in the report border.
func (s ReportShape) Title() string {
	switch s {
	case ShapeHourly:
		return "Hourly usage"
	case ShapeDaily:
		return "Daily usage"
	case ShapeWeekly:
		return "Weekly usage"
	case ShapeMonthly:
		return "Monthly usage"
	default:
		return "Today"
	}
}

// LabelTitle is the header of the row label column.
func (s ReportShape) LabelTitle() string {
	switch s {
	case ShapeHourly:
		return "Hour"
	case ShapeDaily:
		return "Date"
	case ShapeWeekly:
		return "Week"
	case ShapeMonthly:
		return "Month"
	default:
		return "Model"
	}
}
