package eventstore

// Built in JSON schemas, one per event type the decoders emit. Events
// of types not listed here are stored without validation.
var schemaSources = map[string]string{
	"windows:registry:amcache": `{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://forensicanalysis.github.io/timeline/schemas/windows-registry-amcache.json",
		"title": "windows:registry:amcache",
		"description": "A file reference entry decoded from the File branch of an AMCache.hve file.",
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"type": {"const": "windows:registry:amcache"},
			"datetime": {"type": "string"},
			"timestamp_desc": {"type": "string"},
			"company_name": {"type": "string"},
			"file_description": {"type": "string"},
			"file_reference": {"type": "string"},
			"file_size": {"type": "integer", "minimum": 0},
			"file_version": {"type": "string"},
			"full_path": {"type": "string"},
			"language_code": {"type": "integer", "minimum": 0},
			"product_name": {"type": "string"},
			"program_identifier": {"type": "string"},
			"sha1": {"type": "string"}
		},
		"required": ["type", "datetime", "timestamp_desc"],
		"additionalProperties": false
	}`,
	"windows:registry:amcache:programs": `{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://forensicanalysis.github.io/timeline/schemas/windows-registry-amcache-programs.json",
		"title": "windows:registry:amcache:programs",
		"description": "A program entry decoded from the Programs branch of an AMCache.hve file.",
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"type": {"const": "windows:registry:amcache:programs"},
			"datetime": {"type": "string"},
			"timestamp_desc": {"type": "string"},
			"entry_type": {"type": "string"},
			"file_paths": {"type": "array", "items": {"type": "string"}},
			"files": {"type": "array", "items": {"type": "string"}},
			"language_code": {"type": "integer", "minimum": 0},
			"msi_package_code": {"type": "string"},
			"msi_product_code": {"type": "string"},
			"name": {"type": "string"},
			"package_code": {"type": "string"},
			"product_code": {"type": "string"},
			"publisher": {"type": "string"},
			"uninstall_key": {"type": "array", "items": {"type": "string"}},
			"version": {"type": "string"}
		},
		"required": ["type", "datetime", "timestamp_desc"],
		"additionalProperties": false
	}`,
	"windows:registry:key_value": `{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://forensicanalysis.github.io/timeline/schemas/windows-registry-key-value.json",
		"title": "windows:registry:key_value",
		"description": "A visited registry key with a summary of its values.",
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"type": {"const": "windows:registry:key_value"},
			"datetime": {"type": "string"},
			"timestamp_desc": {"type": "string"},
			"key_path": {"type": "string"},
			"values": {"type": "string"}
		},
		"required": ["type", "datetime", "timestamp_desc", "key_path"],
		"additionalProperties": false
	}`,
	"extraction_warning": `{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$id": "https://forensicanalysis.github.io/timeline/schemas/extraction-warning.json",
		"title": "extraction_warning",
		"description": "A warning raised while decoding an artifact.",
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"type": {"const": "extraction_warning"},
			"message": {"type": "string"}
		},
		"required": ["type", "message"],
		"additionalProperties": false
	}`,
}
