package validators

import "github.com/MKhiriev/go-event-organizer/models"

func (v *RequestValidator) validateLocationRequest(req models.LocationRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldAddress, FieldCapacity}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if blank(req.Name) {
				return ErrEmptyName
			}
		case FieldAddress:
			if blank(req.Address) {
				return ErrEmptyAddress
			}
		case FieldCapacity:
			if req.Capacity <= 0 {
				return ErrInvalidCapacity
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
