/*
 * Copyright 2025 Ted Dunning
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package si5351

import "errors"

// Validation errors. They are always reported before anything is written to
// the chip. Errors from the RegisterWriter are returned as they are.
var (
	ErrInvalidFrequency  = errors.New("si5351: invalid frequency")
	ErrInvalidChannel    = errors.New("si5351: invalid channel")
	ErrInvalidPowerLevel = errors.New("si5351: invalid power level")
	ErrInvalidReference  = errors.New("si5351: invalid reference frequency")
)
