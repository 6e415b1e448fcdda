package main

import (
	_ "unsafe"

	"rvkernel/internal/console"
)

//go:linkname uart_putc uart_putc
func uart_putc(c byte)

// initConsole registers the default UART backend at a priority high
// enough to win over any early boot log ring registered before it.
func initConsole() {
	theKernel.Console.AddBackend(console.Backend{
		Name:     "uart",
		Priority: 100,
		WriteBytes: func(p []byte) {
			for _, c := range p {
				uart_putc(c)
			}
		},
	})
}

func printInt(num int) {
	var buf [20]byte
	i := 0

	if num < 0 {
		theKernel.Console.Write([]byte{'-'})
		num = -num
	}

	for num > 0 {
		buf[i] = byte(num%10) + '0'
		i++
		num = num / 10
	}
	if i == 0 {
		buf[0] = '0'
		i = 1
	}

	for i = i - 1; i >= 0; i-- {
		theKernel.Console.Write(buf[i : i+1])
	}
}

func printString(str string) {
	theKernel.Console.Write([]byte(str))
}

// printf is a hand-rolled formatter: no fmt package, since this build has
// no hosted runtime to support it. Supports %d, %s, %c, %x.
func printf(format string, args ...interface{}) {
	argIdx := 0
	for i := 0; i < len(format); i++ {
		if format[i] == '%' && i+1 < len(format) {
			i++
			switch format[i] {
			case 'd':
				printInt(args[argIdx].(int))
				argIdx++
			case 's':
				printString(args[argIdx].(string))
				argIdx++
			case 'x':
				printHex(uint64(args[argIdx].(int)))
				argIdx++
			case 'c':
				switch v := args[argIdx].(type) {
				case int:
					theKernel.Console.Write([]byte{byte(v)})
				case int32:
					theKernel.Console.Write([]byte{byte(v)})
				default:
					theKernel.Console.Write([]byte{'?'})
				}
				argIdx++
			default:
				theKernel.Console.Write([]byte{'%', format[i]})
			}
		} else {
			theKernel.Console.Write([]byte{format[i]})
		}
	}
}

func printHex(v uint64) {
	const digits = "0123456789abcdef"
	var buf [16]byte
	i := len(buf)
	if v == 0 {
		theKernel.Console.Write([]byte{'0'})
		return
	}
	for v > 0 {
		i--
		buf[i] = digits[v%16]
		v /= 16
	}
	theKernel.Console.Write(buf[i:])
}
