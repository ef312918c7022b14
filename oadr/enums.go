package oadr

// Report names defined by OpenADR 2.0b. The METADATA_ variants are used when
// registering report capabilities; the plain names appear in delivered reports.
const (
	ReportNameTelemetryUsage  = "TELEMETRY_USAGE"
	ReportNameTelemetryStatus = "TELEMETRY_STATUS"
	ReportNameHistoryUsage    = "HISTORY_USAGE"

	ReportNameMetadataTelemetryUsage  = "METADATA_TELEMETRY_USAGE"
	ReportNameMetadataTelemetryStatus = "METADATA_TELEMETRY_STATUS"
	ReportNameMetadataHistoryUsage    = "METADATA_HISTORY_USAGE"
)

// Report types (ei:reportType).
const (
	ReportTypeReading        = "reading"
	ReportTypeUsage          = "usage"
	ReportTypeDemand         = "demand"
	ReportTypeSetPoint       = "setPoint"
	ReportTypeBaseline       = "baseline"
	ReportTypeDeviation      = "deviation"
	ReportTypeAvgUsage       = "avgUsage"
	ReportTypeAvgDemand      = "avgDemand"
	ReportTypeOperationState = "operationState"
)

// Reading types (ei:readingType).
const (
	ReadingTypeDirectRead = "Direct Read"
	ReadingTypeNet        = "Net"
	ReadingTypeAllocated  = "Allocated"
	ReadingTypeEstimated  = "Estimated"
	ReadingTypeSummed     = "Summed"
	ReadingTypeDerived    = "Derived"
	ReadingTypeMean       = "Mean"
	ReadingTypePeak       = "Peak"
)

// Data quality codes (oadr:oadrDataQuality).
const (
	QualityGoodNonSpecific      = "Quality Good - Non Specific"
	QualityGoodLocalOverride    = "Quality Good - Local Override"
	QualityBadNonSpecific       = "Quality Bad - Non Specific"
	QualityBadNotConnected      = "Quality Bad - Not Connected"
	QualityBadDeviceFailure     = "Quality Bad - Device Failure"
	QualityBadSensorFailure     = "Quality Bad - Sensor Failure"
	QualityBadLastKnownValue    = "Quality Bad - Last Known Value"
	QualityBadCommFailure       = "Quality Bad - Comm Failure"
	QualityBadOutOfRange        = "Quality Bad - Out of Range"
	QualityUncertainNonSpecific = "Quality Uncertain - Non Specific"
	QualityLimitFieldNotUsed    = "Quality Limit Field Not Used"
)
