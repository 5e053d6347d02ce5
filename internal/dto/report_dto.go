package dto

// ReportTable is the generic shape of a named report: ordered column names and
// one value slice per row. Undefined values are nil.
type ReportTable struct {
	Name    string          `json:"name"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// OperationResult describes the outcome of a named operation.
type OperationResult struct {
	Name      string      `json:"name"`
	Processed int64       `json:"processed"`
	Record    interface{} `json:"record,omitempty"`
}
