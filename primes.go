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

package radd

import "math/big"

// smallPrimes are tried by trial division before the probabilistic test.
var smallPrimes = [...]int{3, 5, 7, 11, 13}

// primeGte returns the smallest odd prime greater than or equal to n. We use
// it for the size of the operation cache, so that the hash of a triple
// spreads over all the entries.
func primeGte(n int) int {
	p := n | 1
	for !oddPrime(p) {
		p += 2
	}
	return p
}

// oddPrime reports whether the odd number p is prime. ProbablyPrime(0) is
// exact for numbers below 2^64.
func oddPrime(p int) bool {
	if p < 3 {
		return false
	}
	for _, d := range smallPrimes {
		if p%d == 0 {
			return p == d
		}
	}
	return big.NewInt(int64(p)).ProbablyPrime(0)
}
