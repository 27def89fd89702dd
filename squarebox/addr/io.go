package addr

// Data-space addresses of the simulated microcontroller's I/O registers.
// Layout follows the ATmega328P.
// Reference: ATmega328P datasheet, "Register Summary"

// port B
const (
	// Port B input pins (read only).
	PINB uint16 = 0x23
	// Port B data direction register.
	DDRB uint16 = 0x24
	// Port B data register; voices drive bits 0-2.
	PORTB uint16 = 0x25
)

// timer/counter 1 (16 bit)
const (
	// Timer 1 interrupt flag register.
	TIFR1 uint16 = 0x36
	// Timer 1 control register A.
	TCCR1A uint16 = 0x80
	// Timer 1 control register B (waveform mode, clock select).
	TCCR1B uint16 = 0x81
	// Timer 1 counter, low and high byte.
	TCNT1L uint16 = 0x84
	TCNT1H uint16 = 0x85
	// Timer 1 output compare A, low and high byte.
	OCR1AL uint16 = 0x88
	OCR1AH uint16 = 0x89
)

// TIFR1 / TCCR1B bits
const (
	OCF1A = 1 // output compare A match flag
	TOV1  = 0 // overflow flag
	WGM12 = 3 // clear timer on compare match
	CS10  = 0 // clock select, bits 0-2
)

// analog to digital converter
const (
	// Power reduction register.
	PRR uint16 = 0x64
	// ADC data register, low byte; read first to lock the result.
	ADCL uint16 = 0x78
	// ADC data register, high byte.
	ADCH uint16 = 0x79
	// ADC control and status register A.
	ADCSRA uint16 = 0x7A
	// ADC control and status register B.
	ADCSRB uint16 = 0x7B
	// ADC multiplexer selection register.
	ADMUX uint16 = 0x7C
	// Digital input disable register 0.
	DIDR0 uint16 = 0x7E
)

// ADCSRA / ADMUX / PRR bits
const (
	ADEN  = 7 // enable
	ADSC  = 6 // start conversion, reads 1 while converting
	ADATE = 5 // auto trigger enable
	ADIF  = 4 // conversion complete flag
	ADIE  = 3 // interrupt enable
	ADPS0 = 0 // prescaler select, bits 0-2

	MUX0  = 0 // channel select, bits 0-3
	ADLAR = 5 // left adjust result
	REFS0 = 6 // reference select, bits 6-7

	PRADC = 0
)

// USART 0
const (
	// USART0 control and status register A.
	UCSR0A uint16 = 0xC0
	// USART0 control and status register B.
	UCSR0B uint16 = 0xC1
	// USART0 control and status register C.
	UCSR0C uint16 = 0xC2
	// USART0 baud rate register, low and high byte.
	UBRR0L uint16 = 0xC4
	UBRR0H uint16 = 0xC5
	// USART0 data register.
	UDR0 uint16 = 0xC6
)

// UCSR0A / UCSR0B / UCSR0C bits
const (
	UDRE0  = 5 // data register empty
	TXC0   = 6 // transmit complete
	TXEN0  = 3 // transmitter enable
	UCSZ00 = 1 // character size, bits 1-2
)
