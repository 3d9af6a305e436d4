package schema

import _ "embed"

// MasterComplexityReportSchema is the built-in schema for master complexity
// reports, used when no schema path is configured.
//
//go:embed master_complexity_report_schema.json
var MasterComplexityReportSchema []byte
