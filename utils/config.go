package utils

import (
	"encoding/json"
)

// StructToMap converts a struct to a generic map via its JSON representation
func StructToMap(someStruct interface{}) (map[string]interface{}, error) {
	jsonbytes, err := json.MarshalIndent(someStruct, "", "  ")
	if err != nil {
		return nil, err
	}
	ret := make(map[string]interface{})
	err = json.Unmarshal(jsonbytes, &ret)

	if err != nil {
		return nil, err
	}
	return ret, nil
}

// MergeJsonWithDefaults unmarshals jsonBytes over the values already set in configStruct
// so fields missing from the file keep their defaults
func MergeJsonWithDefaults(jsonBytes []byte, configStruct interface{}) error {
	valueMap, err := StructToMap(configStruct)
	if err != nil {
		return err
	}
	err = json.Unmarshal(jsonBytes, &valueMap)
	if err != nil {
		return err
	}
	mergedBytes, err := json.Marshal(valueMap)
	if err != nil {
		return err
	}
	return json.Unmarshal(mergedBytes, &configStruct)
}

// ReadConfigWithDefaults reads the section sectionName from the config file content in jsonBytes
// into configStruct; if the section is missing the defaults are added and the updated file
// content is returned so the caller can write it back
func ReadConfigWithDefaults(jsonBytes []byte, sectionName string, configStruct interface{}) ([]byte, error) {
	sectionsMap := make(map[string]interface{})
	var retbytes []byte

	err := json.Unmarshal(jsonBytes, &sectionsMap)

	if err != nil {
		return retbytes, err
	}
	if sectionsMap[sectionName] == nil {
		sectionsMap[sectionName], err = StructToMap(configStruct)
		if err != nil {
			return retbytes, err
		}
		return json.MarshalIndent(sectionsMap, "", "  ")
	}
	sectionBytes, err := json.Marshal(sectionsMap[sectionName])
	if err != nil {
		return retbytes, err
	}

	return retbytes, MergeJsonWithDefaults(sectionBytes, configStruct)
}
