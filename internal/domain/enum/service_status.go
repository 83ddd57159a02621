package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ServiceStatus marks catalog entries as offered or soft-deleted
type ServiceStatus string

const (
	ServiceStatusActive  ServiceStatus = "active"
	ServiceStatusDeleted ServiceStatus = "deleted"
)

func (s ServiceStatus) String() string {
	return string(s)
}

func (s ServiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *ServiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ServiceStatus(str)
	return nil
}

func (s ServiceStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ServiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ServiceStatusActive
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ServiceStatus(v)
	case []byte:
		*s = ServiceStatus(string(v))
	}
	return nil
}
