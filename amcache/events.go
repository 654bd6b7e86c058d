/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

package amcache

// FileEventData is the record of one file reference key under
// Root\File. Nil fields were not present in the source key.
type FileEventData struct {
	// CompanyName is the company that created the product the file
	// belongs to.
	CompanyName *string `json:"company_name,omitempty"`
	// FileDescription describes the file.
	FileDescription *string `json:"file_description,omitempty"`
	// FileReference locates the file on its volume, for example 9-1
	// (MFT entry - sequence number) on NTFS.
	FileReference *string `json:"file_reference,omitempty"`
	// FileSize is the size of the file in bytes.
	FileSize *uint64 `json:"file_size,omitempty"`
	// FileVersion is the version of the file.
	FileVersion *string `json:"file_version,omitempty"`
	// FullPath is the full path of the file.
	FullPath *string `json:"full_path,omitempty"`
	// LanguageCode is the language code of the file.
	LanguageCode *uint64 `json:"language_code,omitempty"`
	// ProductName is the product the file belongs to.
	ProductName *string `json:"product_name,omitempty"`
	// ProgramIdentifier is the identifier of the entry under
	// Root\Programs the file belongs to.
	ProgramIdentifier *string `json:"program_identifier,omitempty"`
	// SHA1 is the SHA-1 of the file.
	SHA1 *string `json:"sha1,omitempty" structs:"sha1"`
}

func (d *FileEventData) DataType() string { return "windows:registry:amcache" }

// ProgramEventData is the record of one program key under
// Root\Programs. Nil and empty fields were not present in the source
// key.
type ProgramEventData struct {
	// EntryType is the type of the entry, usually AddRemoveProgram.
	EntryType *string `json:"entry_type,omitempty"`
	// FilePaths are the file paths of the installed program.
	FilePaths []string `json:"file_paths,omitempty"`
	// Files are the files belonging to the program.
	Files []string `json:"files,omitempty"`
	// LanguageCode is the language code of the program.
	LanguageCode *uint64 `json:"language_code,omitempty"`
	// MSIPackageCode is the MSI package code of the program.
	MSIPackageCode *string `json:"msi_package_code,omitempty"`
	// MSIProductCode is the MSI product code of the program.
	MSIProductCode *string `json:"msi_product_code,omitempty"`
	// Name is the name of the installed program.
	Name *string `json:"name,omitempty"`
	// PackageCode is the package code of the program.
	PackageCode *string `json:"package_code,omitempty"`
	// ProductCode is the product code of the program.
	ProductCode *string `json:"product_code,omitempty"`
	// Publisher is the publisher of the program.
	Publisher *string `json:"publisher,omitempty"`
	// UninstallKey are the uninstall registry keys of the program.
	UninstallKey []string `json:"uninstall_key,omitempty"`
	// Version is the version of the program.
	Version *string `json:"version,omitempty"`
}

func (d *ProgramEventData) DataType() string { return "windows:registry:amcache:programs" }

// KeyEventData is the generic record produced for every visited
// registry key.
type KeyEventData struct {
	// KeyPath is the backslash joined path of the key.
	KeyPath string `json:"key_path"`
	// Values summarizes the key's values, empty if the key has none.
	Values string `json:"values,omitempty"`
}

func (d *KeyEventData) DataType() string { return "windows:registry:key_value" }

// The complete field sets of the mapped records. Mapping tables refer
// to fields through these identifiers, so a table entry without a
// matching assignment cannot be built.
type fileField int

const (
	fileProductName fileField = iota
	fileCompanyName
	fileLanguageCode
	fileFileVersion
	fileFileSize
	fileFileDescription
	fileFullPath
	fileProgramIdentifier
	fileSHA1
)

type programField int

const (
	programName programField = iota
	programVersion
	programPublisher
	programLanguageCode
	programEntryType
	programUninstallKey
	programFilePaths
	programProductCode
	programPackageCode
	programMSIProductCode
	programMSIPackageCode
	programFiles
)

// set assigns a decoded value to the given field. Values of a kind the
// field cannot hold leave it unset.
func (d *FileEventData) set(field fileField, value interface{}) {
	switch field {
	case fileProductName:
		d.ProductName = asText(value)
	case fileCompanyName:
		d.CompanyName = asText(value)
	case fileLanguageCode:
		d.LanguageCode = asInteger(value)
	case fileFileVersion:
		d.FileVersion = asText(value)
	case fileFileSize:
		d.FileSize = asInteger(value)
	case fileFileDescription:
		d.FileDescription = asText(value)
	case fileFullPath:
		d.FullPath = asText(value)
	case fileProgramIdentifier:
		d.ProgramIdentifier = asText(value)
	case fileSHA1:
		d.SHA1 = asText(value)
	}
}

// set assigns a decoded value to the given field. Values of a kind the
// field cannot hold leave it unset, single strings promote to one
// element lists.
func (d *ProgramEventData) set(field programField, value interface{}) {
	switch field {
	case programName:
		d.Name = asText(value)
	case programVersion:
		d.Version = asText(value)
	case programPublisher:
		d.Publisher = asText(value)
	case programLanguageCode:
		d.LanguageCode = asInteger(value)
	case programEntryType:
		d.EntryType = asText(value)
	case programUninstallKey:
		d.UninstallKey = asTextList(value)
	case programFilePaths:
		d.FilePaths = asTextList(value)
	case programProductCode:
		d.ProductCode = asText(value)
	case programPackageCode:
		d.PackageCode = asText(value)
	case programMSIProductCode:
		d.MSIProductCode = asText(value)
	case programMSIPackageCode:
		d.MSIPackageCode = asText(value)
	case programFiles:
		d.Files = asTextList(value)
	}
}
