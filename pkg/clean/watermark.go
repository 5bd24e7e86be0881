// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package clean

// Watermark is the banner prepended to every cleaned file
const Watermark = `
/*
    Cleaned by webclean
    Watermark: 'This file was processed by webclean'
    For support and feedback, visit: https://github.com/walteh/webclean/issues
    Version: 1.1
*/
`

// Prepend returns the watermark followed by content
func Prepend(content string) string {
	return Watermark + content
}
