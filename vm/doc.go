// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

// Package vm implements the single-step, visualizing virtual machine that
// executes lowered IR functions.
//
// The VM keeps a stack of execution frames, one per active call. Rather than
// a native Go call stack, cross-function calls are handled by a cooperative
// suspend/resume protocol (see Runtime.SingleStep): a Call instruction that
// targets a user function signals a pending call back to the Runtime, which
// pushes a new frame; the instruction is re-executed (not advanced past)
// once the callee's return value has been delivered. This lets the host loop
// stop after every single instruction — or every "visible" step, i.e. every
// step that changes the current source line — to redraw variable and array
// state, which is the whole point of this VM: it is a stepping, observable
// machine, not a batch interpreter.
package vm
