package sane

// Device is a descriptor returned by GET_DEVICES: the stable identifier
// used for subsequent opens, plus vendor/model/type metadata (spec §3).
type Device struct {
	Name   string
	Vendor string
	Model  string
	Type   string
}

// DeviceHandle is returned by OPEN. AuthRequired is true iff the resource
// string the server returned is non-empty (spec §3).
type DeviceHandle struct {
	handle       int32
	AuthRequired bool
	Resource     string
}

// readDeviceArray decodes a pointer-prefixed array of device descriptors
// (spec §4.3). A count word C<=1 yields an empty list with no further
// reads; otherwise there are C-1 elements, each preceded by a pointer word.
//
// REDESIGN (spec §9, open question #1): a null pointer in this position is
// treated as end-of-list, and no device body is read for it. The source
// this protocol is modeled on reads a body anyway and is flagged there as
// a defect; this implementation does not reproduce that defect.
func (s *stream) readDeviceArray() ([]Device, error) {
	count, err := s.readWord()
	if err != nil {
		return nil, err
	}
	if count <= 1 {
		return nil, nil
	}
	n := int(count - 1)
	devices := make([]Device, 0, n)
	for i := 0; i < n; i++ {
		ptr, err := s.readWord()
		if err != nil {
			return nil, err
		}
		if ptr == 0 {
			break
		}
		dev, err := s.readDeviceBody()
		if err != nil {
			return nil, err
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

func (s *stream) readDeviceBody() (Device, error) {
	name, err := s.readString()
	if err != nil {
		return Device{}, err
	}
	vendor, err := s.readString()
	if err != nil {
		return Device{}, err
	}
	model, err := s.readString()
	if err != nil {
		return Device{}, err
	}
	typ, err := s.readString()
	if err != nil {
		return Device{}, err
	}
	return Device{Name: name, Vendor: vendor, Model: model, Type: typ}, nil
}
