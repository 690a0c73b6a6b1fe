package powerbi

import (
	"fmt"
	"time"
)

// The semantic query wire format, as the QES endpoint expects it. Only the
// fields this tool's one query shape needs are modeled.

type QueryPayload struct {
	Version                 string  `json:"version"`
	ModelID                 int64   `json:"modelId"`
	AllowLongRunningQueries bool    `json:"allowLongRunningQueries"`
	UserPreferredLocale     string  `json:"userPreferredLocale"`
	CancelQueries           []any   `json:"cancelQueries"`
	Queries                 []Query `json:"queries"`
}

type Query struct {
	Query              CommandList        `json:"Query"`
	QueryID            string             `json:"QueryId"`
	ApplicationContext ApplicationContext `json:"ApplicationContext"`
}

type CommandList struct {
	Commands []Command `json:"Commands"`
}

type Command struct {
	SemanticQueryDataShapeCommand ShapeCommand `json:"SemanticQueryDataShapeCommand"`
}

type ShapeCommand struct {
	Query                SemanticQuery `json:"Query"`
	Binding              Binding       `json:"Binding"`
	ExecutionMetricsKind int           `json:"ExecutionMetricsKind"`
}

type SemanticQuery struct {
	Version int            `json:"Version"`
	From    []EntitySource `json:"From"`
	Select  []Projection   `json:"Select"`
	Where   []Filter       `json:"Where"`
}

type EntitySource struct {
	Entity string `json:"Entity"`
	Name   string `json:"Name"`
	Type   int    `json:"Type"`
}

type Projection struct {
	Aggregation         *Aggregation `json:"Aggregation,omitempty"`
	Column              *Column      `json:"Column,omitempty"`
	Name                string       `json:"Name"`
	NativeReferenceName string       `json:"NativeReferenceName"`
}

type Aggregation struct {
	Expression AggregationExpr `json:"Expression"`
	Function   int             `json:"Function"`
}

type AggregationExpr struct {
	Column Column `json:"Column"`
}

type Column struct {
	Expression SourceExpr `json:"Expression"`
	Property   string     `json:"Property"`
}

type SourceExpr struct {
	SourceRef SourceRef `json:"SourceRef"`
}

type SourceRef struct {
	Source string `json:"Source"`
}

type Filter struct {
	Condition Condition `json:"Condition"`
}

type Condition struct {
	And *AndCondition `json:"And,omitempty"`
	In  *InCondition  `json:"In,omitempty"`
}

type AndCondition struct {
	Left  ConditionOperand `json:"Left"`
	Right ConditionOperand `json:"Right"`
}

type ConditionOperand struct {
	Comparison *Comparison `json:"Comparison,omitempty"`
}

type Comparison struct {
	ComparisonKind int            `json:"ComparisonKind"`
	Left           ComparisonSide `json:"Left"`
	Right          ComparisonSide `json:"Right"`
}

type ComparisonSide struct {
	Column  *Column  `json:"Column,omitempty"`
	Literal *Literal `json:"Literal,omitempty"`
}

type Literal struct {
	Value string `json:"Value"`
}

type InCondition struct {
	Expressions []InExpression `json:"Expressions"`
	Values      [][]InValue    `json:"Values"`
}

type InExpression struct {
	Column Column `json:"Column"`
}

type InValue struct {
	Literal Literal `json:"Literal"`
}

type Binding struct {
	Primary       GroupingSet   `json:"Primary"`
	Secondary     GroupingSet   `json:"Secondary"`
	DataReduction DataReduction `json:"DataReduction"`
	Version       int           `json:"Version"`
}

type GroupingSet struct {
	Groupings []Grouping `json:"Groupings"`
}

type Grouping struct {
	Projections []int `json:"Projections"`
}

type DataReduction struct {
	DataVolume   int          `json:"DataVolume"`
	Intersection Intersection `json:"Intersection"`
}

type Intersection struct {
	BinnedLineSample struct{} `json:"BinnedLineSample"`
}

type ApplicationContext struct {
	DatasetID string              `json:"DatasetId"`
	Sources   []ApplicationSource `json:"Sources"`
}

type ApplicationSource struct {
	ReportID string `json:"ReportId"`
	VisualID string `json:"VisualId"`
}

const (
	priceEntity    = "Precios reuters diarios"
	calendarEntity = "Calendario"
)

func sourceColumn(source, property string) Column {
	return Column{
		Expression: SourceExpr{SourceRef: SourceRef{Source: source}},
		Property:   property,
	}
}

// DailySeriesQuery builds the query document for the daily price series of a
// single product/department pair. endExclusive must already be one day past
// the intended inclusive end date; this builder never adjusts the bounds.
// QueryId is left blank for the transport layer. The same inputs always
// produce the same document.
func DailySeriesQuery(
	modelID int64,
	datasetID, reportID, visualID string,
	start, endExclusive time.Time,
	product, department string,
) QueryPayload {
	startLiteral := fmt.Sprintf("datetime'%s'", start.Format("2006-01-02T00:00:00"))
	endLiteral := fmt.Sprintf("datetime'%s'", endExclusive.Format("2006-01-02T00:00:00"))

	dateColumn := sourceColumn("c", "Fecha")
	priceColumn := sourceColumn("p", "PRECIO")
	productColumn := sourceColumn("p", "PRODUCTO")
	departmentColumn := sourceColumn("p", "DEPARTAMENTO")

	semanticQuery := SemanticQuery{
		Version: 2,
		From: []EntitySource{
			{Entity: priceEntity, Name: "p", Type: 0},
			{Entity: calendarEntity, Name: "c", Type: 0},
		},
		Select: []Projection{
			{
				Aggregation: &Aggregation{
					Expression: AggregationExpr{Column: priceColumn},
					Function:   1,
				},
				Name:                fmt.Sprintf("Sum(%s.PRECIO)", priceEntity),
				NativeReferenceName: "PRECIO1",
			},
			{
				Column:              &dateColumn,
				Name:                fmt.Sprintf("%s.Fecha", calendarEntity),
				NativeReferenceName: "Fecha",
			},
			{
				Column:              &productColumn,
				Name:                fmt.Sprintf("%s.PRODUCTO", priceEntity),
				NativeReferenceName: "PRODUCTO",
			},
		},
		Where: []Filter{
			{
				Condition: Condition{
					And: &AndCondition{
						Left: ConditionOperand{
							Comparison: &Comparison{
								ComparisonKind: 2,
								Left:           ComparisonSide{Column: &dateColumn},
								Right:          ComparisonSide{Literal: &Literal{Value: startLiteral}},
							},
						},
						Right: ConditionOperand{
							Comparison: &Comparison{
								ComparisonKind: 3,
								Left:           ComparisonSide{Column: &dateColumn},
								Right:          ComparisonSide{Literal: &Literal{Value: endLiteral}},
							},
						},
					},
				},
			},
			{
				Condition: Condition{
					In: &InCondition{
						Expressions: []InExpression{{Column: departmentColumn}},
						Values:      [][]InValue{{{Literal: Literal{Value: fmt.Sprintf("'%s'", department)}}}},
					},
				},
			},
			{
				Condition: Condition{
					In: &InCondition{
						Expressions: []InExpression{{Column: productColumn}},
						Values:      [][]InValue{{{Literal: Literal{Value: fmt.Sprintf("'%s'", product)}}}},
					},
				},
			},
		},
	}

	return QueryPayload{
		Version:                 "1.0.0",
		ModelID:                 modelID,
		AllowLongRunningQueries: true,
		UserPreferredLocale:     "en-US",
		CancelQueries:           []any{},
		Queries: []Query{
			{
				Query: CommandList{
					Commands: []Command{
						{
							SemanticQueryDataShapeCommand: ShapeCommand{
								Query: semanticQuery,
								Binding: Binding{
									Primary:   GroupingSet{Groupings: []Grouping{{Projections: []int{0, 1}}}},
									Secondary: GroupingSet{Groupings: []Grouping{{Projections: []int{2}}}},
									DataReduction: DataReduction{
										DataVolume:   4,
										Intersection: Intersection{},
									},
									Version: 1,
								},
								ExecutionMetricsKind: 1,
							},
						},
					},
				},
				QueryID: "",
				ApplicationContext: ApplicationContext{
					// The backend expects these IDs with a leading apostrophe.
					DatasetID: fmt.Sprintf("'%s", datasetID),
					Sources: []ApplicationSource{
						{
							ReportID: fmt.Sprintf("'%s", reportID),
							VisualID: fmt.Sprintf("'%s", visualID),
						},
					},
				},
			},
		},
	}
}
