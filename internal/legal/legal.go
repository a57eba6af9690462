// Package legal renders the LICENSE and COPYRIGHT files placed at the root
// of a target project.
package legal

import (
	"strings"

	"github.com/gorewood/proact/internal/metadata"
)

// LicenseFile and CopyrightFile are the artifact names at the project root.
const (
	LicenseFile   = "LICENSE"
	CopyrightFile = "COPYRIGHT"
)

const copyrightMarker = "{{copyright}}"

const mitTemplate = `MIT License

{{copyright}}

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

// RenderLicense returns the MIT license text with the copyright line for meta.
func RenderLicense(meta metadata.ProjectMetadata) string {
	return strings.Replace(mitTemplate, copyrightMarker, meta.Copyright(), 1)
}

// RenderCopyright returns the short COPYRIGHT notice for meta.
func RenderCopyright(meta metadata.ProjectMetadata) string {
	var b strings.Builder
	b.WriteString(meta.Copyright())
	b.WriteString("\n\n")
	b.WriteString("This project is licensed under the terms found in the " + LicenseFile + " file.\n")
	return b.String()
}
