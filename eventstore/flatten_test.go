// Copyright (c) 2019 Nguyễn Quốc Đính
// Copyright (c) 2019 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Nguyễn Quốc Đính, Jonas Plum

package eventstore

import (
	"reflect"
	"testing"
)

func Test_flatten(t *testing.T) {
	type args struct {
		nested map[string]interface{}
	}
	tests := []struct {
		name    string
		args    args
		want    map[string]interface{}
		wantErr bool
	}{
		{"flat", args{map[string]interface{}{"key_path": `\Root\File`}}, map[string]interface{}{"key_path": `\Root\File`}, false},
		{"nested", args{map[string]interface{}{"file": map[string]interface{}{"size": 360448}}}, map[string]interface{}{"file.size": 360448}, false},
		{"two levels", args{map[string]interface{}{"a": map[string]interface{}{"b": map[string]interface{}{"c": 1}}}}, map[string]interface{}{"a.b.c": 1}, false},
		{"list stays whole", args{map[string]interface{}{"file_paths": []interface{}{`C:\Program Files\a`, `C:\Program Files\b`}}}, map[string]interface{}{"file_paths": []interface{}{`C:\Program Files\a`, `C:\Program Files\b`}}, false},
		{"nil dropped", args{map[string]interface{}{"sha1": nil, "name": "Firefox"}}, map[string]interface{}{"name": "Firefox"}, false},
		{"empty", args{map[string]interface{}{}}, map[string]interface{}{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := flatten(tt.args.nested)
			if (err != nil) != tt.wantErr {
				t.Errorf("flatten() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("flatten() = %v, want %v", got, tt.want)
			}
		})
	}
}
