package domain

// Agency is a government body responsible for a set of complaint categories.
type Agency string

const (
	AgencyRTDA           Agency = "RTDA"
	AgencyREG            Agency = "REG"
	AgencyWASAC          Agency = "WASAC"
	AgencyNIDA           Agency = "NIDA"
	AgencyMINISANTE      Agency = "MINISANTE"
	AgencyDGIE           Agency = "DGIE"
	AgencyDistrictOffice Agency = "District Office"
)
