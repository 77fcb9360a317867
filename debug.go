// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

//go:build debug

package radd

import (
	"log"
	"os"
)

const _DEBUG bool = true
const _LOGLEVEL int = 1

// ******************************************************************************************************

func init() {
	log.SetOutput(os.Stdout)
}

// ******************************************************************************************************

func (m *Manager) logTable() {
	for k, n := range m.nodes {
		switch {
		case n.index == _FREEINDEX:
			continue
		case n.index == _CONSTINDEX:
			log.Printf("%-3d ( const %g ) | %d\n", k, n.value, n.ref)
		case n.ref == _MAXREFCOUNT:
			log.Printf("%-3d ( %-3d ,  %-4s ,  %-4s) | +\n", k, n.index, edgename(n.then), edgename(n.els))
		case n.dead:
			log.Printf("%-3d ( %-3d ,  %-4s ,  %-4s) | dead\n", k, n.index, edgename(n.then), edgename(n.els))
		default:
			log.Printf("%-3d ( %-3d ,  %-4s ,  %-4s) | %d\n", k, n.index, edgename(n.then), edgename(n.els), n.ref)
		}
	}
}
