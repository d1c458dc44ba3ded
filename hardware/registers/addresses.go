// This file is part of GopherSPI.
//
// GopherSPI is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherSPI is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherSPI.  If not, see <https://www.gnu.org/licenses/>.

package registers

// Address is the 7-bit register address carried in bits 14 to 8 of a
// transaction word.
type Address uint8

// The five addressable registers. Every other address value is reserved
// and writes to it are discarded.
const (
	OutLow        Address = 0x00
	OutHigh       Address = 0x01
	PWMEnableLow  Address = 0x02
	PWMEnableHigh Address = 0x03
	PWMDutyCycle  Address = 0x04
)

// NumRegisters is the number of addressable registers in the file.
const NumRegisters = 5

// AddressList is a list of all valid addresses in ascending order.
var AddressList = []Address{OutLow, OutHigh, PWMEnableLow, PWMEnableHigh, PWMDutyCycle}

func (a Address) String() string {
	switch a {
	case OutLow:
		return "out_low"
	case OutHigh:
		return "out_high"
	case PWMEnableLow:
		return "pwm_enable_low"
	case PWMEnableHigh:
		return "pwm_enable_high"
	case PWMDutyCycle:
		return "pwm_duty_cycle"
	}
	return "reserved"
}
