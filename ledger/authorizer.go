// Copyright 2025 Campustudio
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

package ledger

// Authorizer answers whether an identity may perform operator-only
// operations. The ledger consults it before touching any state.
type Authorizer interface {
	IsOperator(identity string) bool
}

// StaticAuthorizer authorizes a fixed set of operator identities
type StaticAuthorizer struct {
	operators map[string]struct{}
}

// NewStaticAuthorizer returns an Authorizer recognizing the given identities
// as operators
func NewStaticAuthorizer(operators ...string) *StaticAuthorizer {
	a := &StaticAuthorizer{
		operators: make(map[string]struct{}, len(operators)),
	}
	for _, op := range operators {
		if op != "" {
			a.operators[op] = struct{}{}
		}
	}
	return a
}

func (a *StaticAuthorizer) IsOperator(identity string) bool {
	_, ok := a.operators[identity]
	return ok
}
