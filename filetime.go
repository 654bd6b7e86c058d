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

package timeline

import "time"

// FILETIME counts 100 nanosecond ticks since 1601-01-01T00:00:00Z. The
// offset to the POSIX epoch is 11644473600 seconds.
const (
	filetimeTicksPerSecond = 10000000
	filetimeEpochDelta     = 11644473600
)

// FromFiletime converts a 64-bit FILETIME tick count into a UTC instant,
// preserving the native 100 nanosecond precision. Ticks before the POSIX
// epoch convert to valid pre-1970 instants, which forensic timestamps
// regularly contain.
func FromFiletime(ticks uint64) time.Time {
	secs := int64(ticks/filetimeTicksPerSecond) - filetimeEpochDelta
	nsecs := int64(ticks%filetimeTicksPerSecond) * 100
	return time.Unix(secs, nsecs).UTC()
}

// FromPosixTime converts a 32-bit count of seconds since
// 1970-01-01T00:00:00Z into a UTC instant.
func FromPosixTime(seconds uint32) time.Time {
	return time.Unix(int64(seconds), 0).UTC()
}
