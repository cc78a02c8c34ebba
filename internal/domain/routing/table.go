// Package routing maps request types to the departments responsible for
// processing them. An empty owner set means open routing: any department
// may be selected.
package routing

// RequestType classifies what a requisition is for
type RequestType string

const (
	RequestOfficeSupplies     RequestType = "OFFICE_SUPPLIES"
	RequestITEquipment        RequestType = "IT_EQUIPMENT"
	RequestSoftwareLicense    RequestType = "SOFTWARE_LICENSE"
	RequestRepairsMaintenance RequestType = "REPAIRS_MAINTENANCE"
	RequestJanitorial         RequestType = "JANITORIAL"
	RequestSecurity           RequestType = "SECURITY"
	RequestTravel             RequestType = "TRAVEL"
	RequestTraining           RequestType = "TRAINING"
	RequestRecruitment        RequestType = "RECRUITMENT"
	RequestUtilities          RequestType = "UTILITIES"
	RequestCommunications     RequestType = "COMMUNICATIONS"
	RequestMarketingMaterials RequestType = "MARKETING_MATERIALS"
	RequestProfessionalFees   RequestType = "PROFESSIONAL_FEES"
	RequestVehicleMaintenance RequestType = "VEHICLE_MAINTENANCE"
	RequestOthers             RequestType = "OTHERS"
)

// Table is the immutable request-type to process-owner mapping
type Table struct {
	owners map[RequestType][]string
}

// New creates a routing table from the given mapping. The mapping is copied
// so callers cannot mutate the table afterwards.
func New(owners map[RequestType][]string) Table {
	copied := make(map[RequestType][]string, len(owners))
	for rt, depts := range owners {
		copied[rt] = append([]string{}, depts...)
	}
	return Table{owners: copied}
}

// Default returns the production routing table
func Default() Table {
	return New(map[RequestType][]string{
		RequestOfficeSupplies:     {"ADMIN", "PROC"},
		RequestITEquipment:        {"IT"},
		RequestSoftwareLicense:    {"IT"},
		RequestRepairsMaintenance: {"GSD"},
		RequestJanitorial:         {"GSD", "ADMIN"},
		RequestSecurity:           {"GSD"},
		RequestTravel:             {"ADMIN"},
		RequestTraining:           {"HR"},
		RequestRecruitment:        {"HR"},
		RequestUtilities:          {"FIN"},
		RequestCommunications:     {"IT", "ADMIN"},
		RequestMarketingMaterials: {"MKT"},
		RequestProfessionalFees:   {"FIN"},
		RequestVehicleMaintenance: {"GSD"},
		RequestOthers:             {},
	})
}

// Known returns true if the request type appears in the table
func (t Table) Known(rt RequestType) bool {
	_, ok := t.owners[rt]
	return ok
}

// ProcessOwners returns the department codes responsible for the request
// type. An empty slice means any department may process it.
func (t Table) ProcessOwners(rt RequestType) []string {
	return append([]string{}, t.owners[rt]...)
}

// CanProcess returns true if the department may process the request type.
// Open routing (no designated owners) admits every department.
func (t Table) CanProcess(rt RequestType, departmentCode string) bool {
	owners := t.owners[rt]
	if len(owners) == 0 {
		return true
	}
	for _, code := range owners {
		if code == departmentCode {
			return true
		}
	}
	return false
}
