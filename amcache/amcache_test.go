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

import (
	"bytes"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/forensicanalysis/timeline"
	"github.com/forensicanalysis/timeline/goregistry"
)

func stringPtr(s string) *string  { return &s }
func integerPtr(v uint64) *uint64 { return &v }

func written(offset int) time.Time {
	return time.Date(2017, 8, 28, 9, 23, 49, 0, time.UTC).Add(time.Duration(offset) * time.Second)
}

// testAMCacheHive builds a synthetic AMCache tree with a File branch,
// an undecoded Generic branch and a Programs branch.
func testAMCacheHive() goregistry.Hive {
	base := goregistry.NewKey("", time.Time{})

	root := goregistry.NewKey("Root", written(0))
	base.AddSubKey(root)

	file := goregistry.NewKey("File", written(1))
	root.AddSubKey(file)

	volume := goregistry.NewKey("{4eea310a-2b9d-11e4-8f18-806e6f6e6963}", written(2))
	file.AddSubKey(volume)

	reference := goregistry.NewKey("10000923", written(3))
	reference.AddValue(goregistry.NewStringValue("0", "svchost"))
	reference.AddValue(goregistry.NewDwordValue("3", 1033))
	reference.AddValue(goregistry.NewQwordValue("6", 51712))
	reference.AddValue(goregistry.NewStringValue("15", `C:\Windows\System32\svchost.exe`))
	reference.AddValue(goregistry.NewStringValue("101", "0000da39a3ee5e6b4b0d3255bfef95601890afd80709"))
	reference.AddValue(goregistry.NewQwordValue("17", 131364922450000000))
	reference.AddValue(goregistry.NewQwordValue("12", 131277024000000000))
	reference.AddValue(goregistry.NewQwordValue("11", 131345846000000000))
	reference.AddValue(goregistry.NewDwordValue("f", 1490111000))
	volume.AddSubKey(reference)

	generic := goregistry.NewKey("Generic", written(4))
	root.AddSubKey(generic)
	inner := goregistry.NewKey("Inner", written(5))
	generic.AddSubKey(inner)
	leaf := goregistry.NewKey("Leaf", written(6))
	inner.AddSubKey(leaf)

	programs := goregistry.NewKey("Programs", written(7))
	root.AddSubKey(programs)

	program := goregistry.NewKey("0000f519feb48fdb59a1d54bc2b23ed6de5e0c0c04c8", written(8))
	program.AddValue(goregistry.NewStringValue("0", "Chrome"))
	program.AddValue(goregistry.NewStringValue("1", "67.0.3396.99"))
	program.AddValue(goregistry.NewStringValue("2", "Google Inc."))
	program.AddValue(goregistry.NewDwordValue("3", 1033))
	program.AddValue(goregistry.NewStringValue("6", "AddRemoveProgram"))
	program.AddValue(goregistry.NewStringValue("7", `HKEY_LOCAL_MACHINE\Software\Microsoft\Windows\CurrentVersion\Uninstall\Google Chrome`))
	program.AddValue(goregistry.NewMultiStringValue("d", []string{`c:\program files (x86)\google\chrome`}))
	program.AddValue(goregistry.NewStringValue("f", "{B43A8A84-6CB1-3A88-B863-2AF5F80E3324}"))
	program.AddValue(goregistry.NewStringValue("10", "{4A6E9AC1-2864-4A8B-A6E0-E392B3E9B30B}"))
	program.AddValue(goregistry.NewStringValue("11", "{A780D4A1-6E07-3B47-BBA1-F4E4B2BC8C0D}"))
	program.AddValue(goregistry.NewStringValue("12", "{5A7FB30C-6AE7-4E6F-8F2C-E4D6F4A0B8C1}"))
	program.AddValue(goregistry.NewMultiStringValue("Files", []string{`20\c:\program files (x86)\google\chrome\chrome.exe`}))
	program.AddValue(goregistry.NewDwordValue("a", 1483228800))
	programs.AddSubKey(program)

	return goregistry.NewHive(base)
}

func TestNew(t *testing.T) {
	parser := New()
	if parser.Name() != "amcache" {
		t.Errorf("Name() = %v, want %v", parser.Name(), "amcache")
	}
	if parser.Format() != "AMCache Windows NT Registry (AMCache.hve) file" {
		t.Errorf("Format() = %v, want %v", parser.Format(), "AMCache Windows NT Registry (AMCache.hve) file")
	}
}

func TestParser_Parse(t *testing.T) {
	collector := &timeline.Collector{}
	if err := New().Parse(bytes.NewReader([]byte("not a registry hive")), collector); err == nil {
		t.Error("Parse() expected an error for an invalid hive")
	}
}

func TestParser_ParseHive(t *testing.T) {
	collector := &timeline.Collector{}
	New().ParseHive(testAMCacheHive(), collector)

	assert.Empty(t, collector.Warnings)

	var dataTypes []string
	var keyPaths []string
	for _, event := range collector.Events {
		dataTypes = append(dataTypes, event.Data.DataType())
		if data, ok := event.Data.(*KeyEventData); ok {
			keyPaths = append(keyPaths, data.KeyPath)
		}
	}

	// The generic walk of a branch completes before its entries are
	// decoded, the File branch before the Generic and Programs branches.
	assert.Equal(t, []string{
		"windows:registry:key_value",
		"windows:registry:key_value",
		"windows:registry:key_value",
		"windows:registry:key_value",
		"windows:registry:amcache",
		"windows:registry:amcache",
		"windows:registry:amcache",
		"windows:registry:amcache",
		"windows:registry:key_value",
		"windows:registry:key_value",
		"windows:registry:key_value",
		"windows:registry:key_value",
		"windows:registry:key_value",
		"windows:registry:amcache:programs",
	}, dataTypes)

	assert.Equal(t, []string{
		`\Root`,
		`\Root\File`,
		`\Root\File\{4eea310a-2b9d-11e4-8f18-806e6f6e6963}`,
		`\Root\File\{4eea310a-2b9d-11e4-8f18-806e6f6e6963}\10000923`,
		`\Root\Generic`,
		`\Root\Generic\Inner`,
		`\Root\Generic\Inner\Leaf`,
		`\Root\Programs`,
		`\Root\Programs\0000f519feb48fdb59a1d54bc2b23ed6de5e0c0c04c8`,
	}, keyPaths)

	rootEvent := collector.Events[0]
	assert.Equal(t, written(0), rootEvent.Time)
	assert.Equal(t, timeline.WrittenTime, rootEvent.Description)
	assert.Equal(t, &KeyEventData{KeyPath: `\Root`}, rootEvent.Data)

	referenceEvent := collector.Events[3]
	assert.Equal(t, written(3), referenceEvent.Time)
	assert.Equal(t, &KeyEventData{
		KeyPath: `\Root\File\{4eea310a-2b9d-11e4-8f18-806e6f6e6963}\10000923`,
		Values: `0: svchost ` +
			`101: 0000da39a3ee5e6b4b0d3255bfef95601890afd80709 ` +
			`11: 131345846000000000 ` +
			`12: 131277024000000000 ` +
			`15: C:\Windows\System32\svchost.exe ` +
			`17: 131364922450000000 ` +
			`3: 1033 ` +
			`6: 51712 ` +
			`f: 1490111000`,
	}, referenceEvent.Data)

	wantFile := &FileEventData{
		FileReference: stringPtr("2339-1"),
		FileSize:      integerPtr(51712),
		FullPath:      stringPtr(`C:\Windows\System32\svchost.exe`),
		LanguageCode:  integerPtr(1033),
		ProductName:   stringPtr("svchost"),
		SHA1:          stringPtr("da39a3ee5e6b4b0d3255bfef95601890afd80709"),
	}
	wantFileEvents := []struct {
		time        time.Time
		description string
	}{
		{time.Date(2017, 4, 12, 17, 37, 25, 0, time.UTC), timeline.ModificationTime},
		{time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), timeline.CreationTime},
		{time.Date(2017, 3, 21, 15, 43, 20, 0, time.UTC), timeline.ModificationTime},
		{time.Date(2017, 3, 21, 15, 43, 20, 0, time.UTC), timeline.ChangeTime},
	}
	for i, want := range wantFileEvents {
		event := collector.Events[4+i]
		assert.Equal(t, want.time, event.Time)
		assert.Equal(t, want.description, event.Description)
		assert.Equal(t, timeline.Data(wantFile), event.Data)
	}
	for i := 5; i <= 7; i++ {
		if collector.Events[i].Data != collector.Events[4].Data {
			t.Errorf("file events do not share their record, event %d differs", i)
		}
	}

	programEvent := collector.Events[13]
	assert.Equal(t, time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), programEvent.Time)
	assert.Equal(t, timeline.InstallationTime, programEvent.Description)
	assert.Equal(t, timeline.Data(&ProgramEventData{
		EntryType:      stringPtr("AddRemoveProgram"),
		FilePaths:      []string{`c:\program files (x86)\google\chrome`},
		Files:          []string{`20\c:\program files (x86)\google\chrome\chrome.exe`},
		LanguageCode:   integerPtr(1033),
		MSIPackageCode: stringPtr("{5A7FB30C-6AE7-4E6F-8F2C-E4D6F4A0B8C1}"),
		MSIProductCode: stringPtr("{A780D4A1-6E07-3B47-BBA1-F4E4B2BC8C0D}"),
		Name:           stringPtr("Chrome"),
		PackageCode:    stringPtr("{4A6E9AC1-2864-4A8B-A6E0-E392B3E9B30B}"),
		ProductCode:    stringPtr("{B43A8A84-6CB1-3A88-B863-2AF5F80E3324}"),
		Publisher:      stringPtr("Google Inc."),
		UninstallKey:   []string{`HKEY_LOCAL_MACHINE\Software\Microsoft\Windows\CurrentVersion\Uninstall\Google Chrome`},
		Version:        stringPtr("67.0.3396.99"),
	}), programEvent.Data)
}

func TestParser_ParseHiveTwice(t *testing.T) {
	hive := testAMCacheHive()
	parser := New()

	first := &timeline.Collector{}
	parser.ParseHive(hive, first)
	second := &timeline.Collector{}
	parser.ParseHive(hive, second)

	assert.Equal(t, first.Events, second.Events)
	assert.Equal(t, first.Warnings, second.Warnings)
}

func TestParser_ParseHiveMissingRoot(t *testing.T) {
	collector := &timeline.Collector{}
	New().ParseHive(goregistry.NewHive(goregistry.NewKey("", time.Time{})), collector)

	assert.Equal(t, []string{"Root key missing from AMCache.hve file."}, collector.Warnings)
	assert.Empty(t, collector.Events)
}

func Test_decodeFileReference(t *testing.T) {
	type args struct {
		name string
	}
	tests := []struct {
		name string
		args args
		want *string
	}{
		{"ntfs", args{"10000923"}, stringPtr("2339-1")},
		{"ntfs high sequence number", args{"f00001"}, stringPtr("1-15")},
		{"fat", args{"9"}, stringPtr("9")},
		{"fat hexadecimal", args{"1f"}, stringPtr("31")},
		{"empty sequence number", args{"0000923"}, nil},
		{"empty mft entry", args{"9230000"}, nil},
		{"mft entry not hexadecimal", args{"10000zzz"}, nil},
		{"not hexadecimal", args{"amcache"}, nil},
		{"empty", args{""}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeFileReference(tt.args.name); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeFileReference() = %v, want %v", got, tt.want)
			}
		})
	}
}

func referenceKey(name string, values ...goregistry.Value) goregistry.Key {
	key := goregistry.NewKey(name, time.Time{})
	for _, value := range values {
		key.AddValue(value)
	}
	return key
}

func TestParser_parseFileReferenceKey(t *testing.T) {
	type args struct {
		key goregistry.Key
	}
	tests := []struct {
		name         string
		args         args
		wantEvents   int
		wantData     timeline.Data
		wantWarnings []string
	}{
		{"sha1 prefix stripped", args{referenceKey("9",
			goregistry.NewStringValue("101", "0000da39a3ee5e6b4b0d3255bfef95601890afd80709"),
			goregistry.NewQwordValue("17", 131364922450000000),
		)}, 1, &FileEventData{
			FileReference: stringPtr("9"),
			SHA1:          stringPtr("da39a3ee5e6b4b0d3255bfef95601890afd80709"),
		}, nil},
		{"sha1 without prefix kept", args{referenceKey("9",
			goregistry.NewStringValue("101", "da39a3ee5e6b4b0d3255bfef95601890afd80709"),
			goregistry.NewQwordValue("17", 131364922450000000),
		)}, 1, &FileEventData{
			FileReference: stringPtr("9"),
			SHA1:          stringPtr("da39a3ee5e6b4b0d3255bfef95601890afd80709"),
		}, nil},
		{"no timestamps", args{referenceKey("9",
			goregistry.NewStringValue("15", `C:\Windows\notepad.exe`),
		)}, 0, nil, nil},
		{"empty payload skipped", args{referenceKey("9",
			goregistry.NewValue("15", goregistry.REG_SZ, nil),
			goregistry.NewQwordValue("17", 131364922450000000),
		)}, 1, &FileEventData{
			FileReference: stringPtr("9"),
		}, nil},
		{"mismatched kind left unset", args{referenceKey("9",
			goregistry.NewStringValue("6", "large"),
			goregistry.NewQwordValue("17", 131364922450000000),
		)}, 1, &FileEventData{
			FileReference: stringPtr("9"),
		}, nil},
		{"undecodable field value", args{referenceKey("9",
			goregistry.NewValue("0", goregistry.REG_SZ, []byte{0x41}),
			goregistry.NewStringValue("15", `C:\Windows\notepad.exe`),
			goregistry.NewQwordValue("17", 131364922450000000),
		)}, 1, &FileEventData{
			FileReference: stringPtr("9"),
			FullPath:      stringPtr(`C:\Windows\notepad.exe`),
		}, []string{"Unable to read data from value: 0 with error: utf16 payload has odd length 1"}},
		{"undecodable timestamp", args{referenceKey("9",
			goregistry.NewStringValue("17", "soon"),
		)}, 0, nil, []string{"Unable to read data from value: 17 with error: REG_SZ value is not an integer"}},
		{"timestamp without payload", args{referenceKey("9",
			goregistry.NewValue("12", goregistry.REG_QWORD, nil),
		)}, 0, nil, []string{"Unable to read data from value: 12 with error: qword payload has 0 bytes, want 8"}},
		{"compilation time overflow", args{referenceKey("9",
			goregistry.NewQwordValue("f", math.MaxUint32+1),
		)}, 0, nil, []string{"Unable to read data from value: f with error: 4294967296 does not fit a 32-bit POSIX timestamp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := &timeline.Collector{}
			New().parseFileReferenceKey(tt.args.key, collector)

			if len(collector.Events) != tt.wantEvents {
				t.Fatalf("parseFileReferenceKey() produced %d events, want %d", len(collector.Events), tt.wantEvents)
			}
			if tt.wantEvents > 0 {
				assert.Equal(t, tt.wantData, collector.Events[0].Data)
			}
			if !reflect.DeepEqual(collector.Warnings, tt.wantWarnings) {
				t.Errorf("parseFileReferenceKey() warnings = %v, want %v", collector.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestParser_parseProgramKey(t *testing.T) {
	type args struct {
		key goregistry.Key
	}
	tests := []struct {
		name         string
		args         args
		wantEvents   int
		wantData     timeline.Data
		wantWarnings []string
	}{
		{"installed program", args{referenceKey("0000f519feb48fdb59a1d54bc2b23ed6de5e0c0c04c8",
			goregistry.NewStringValue("0", "Chrome"),
			goregistry.NewStringValue("7", `HKLM\Software\Chrome`),
			goregistry.NewDwordValue("a", 1490111000),
		)}, 1, &ProgramEventData{
			Name:         stringPtr("Chrome"),
			UninstallKey: []string{`HKLM\Software\Chrome`},
		}, nil},
		{"without installation time", args{referenceKey("0000f519feb48fdb59a1d54bc2b23ed6de5e0c0c04c8",
			goregistry.NewStringValue("0", "Chrome"),
		)}, 0, nil, nil},
		{"undecodable name", args{referenceKey("0000f519feb48fdb59a1d54bc2b23ed6de5e0c0c04c8",
			goregistry.NewValue("0", goregistry.REG_SZ, []byte{0x41}),
			goregistry.NewDwordValue("a", 1490111000),
		)}, 1, &ProgramEventData{},
			[]string{"Unable to read data from value: 0 with error: utf16 payload has odd length 1"}},
		{"installation time overflow", args{referenceKey("0000f519feb48fdb59a1d54bc2b23ed6de5e0c0c04c8",
			goregistry.NewQwordValue("a", math.MaxUint32+1),
		)}, 0, nil,
			[]string{"Unable to read data from value: a with error: 4294967296 does not fit a 32-bit POSIX timestamp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := &timeline.Collector{}
			New().parseProgramKey(tt.args.key, collector)

			if len(collector.Events) != tt.wantEvents {
				t.Fatalf("parseProgramKey() produced %d events, want %d", len(collector.Events), tt.wantEvents)
			}
			if tt.wantEvents > 0 {
				assert.Equal(t, tt.wantData, collector.Events[0].Data)
				assert.Equal(t, timeline.InstallationTime, collector.Events[0].Description)
				assert.Equal(t, time.Date(2017, 3, 21, 15, 43, 20, 0, time.UTC), collector.Events[0].Time)
			}
			if !reflect.DeepEqual(collector.Warnings, tt.wantWarnings) {
				t.Errorf("parseProgramKey() warnings = %v, want %v", collector.Warnings, tt.wantWarnings)
			}
		})
	}
}
