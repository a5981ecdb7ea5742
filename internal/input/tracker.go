// Package input guarda a última amostra de ponteiro e de inclinação do dispositivo.
package input

// Sample é uma leitura 2D (pixels para o ponteiro, m/s² para a inclinação).
type Sample struct {
	X, Y float32
}

// Rotation é a rotação alvo da cena, em radianos.
type Rotation struct {
	Pitch float32 // eixo X
	Yaw   float32 // eixo Y
}

// Tracker registra o ponteiro e a inclinação sem histórico.
// Não é seguro para uso concorrente: só o loop de frames deve tocá-lo.
type Tracker struct {
	pointer Sample
	tilt    Sample

	tiltSupported bool
	tiltSeen      bool

	pointerDivisor float32
	tiltDivisor    float32
}

// NewTracker cria um tracker com os divisores de sensibilidade.
func NewTracker(pointerDivisor, tiltDivisor float32) *Tracker {
	return &Tracker{
		pointerDivisor: pointerDivisor,
		tiltDivisor:    tiltDivisor,
	}
}

// MovePointer registra a posição do ponteiro relativa ao centro da janela.
func (t *Tracker) MovePointer(x, y float32, width, height int) {
	t.pointer = Sample{
		X: x - float32(width)/2,
		Y: y - float32(height)/2,
	}
}

// Tilt registra a aceleração (com gravidade) nos eixos x e y.
func (t *Tracker) Tilt(s Sample) {
	t.tilt = s
	if s.X != 0 {
		t.tiltSeen = true
	}
}

// SetTiltSupported informa se a plataforma entrega eventos de inclinação.
func (t *Tracker) SetTiltSupported(ok bool) {
	t.tiltSupported = ok
}

// TiltSupported informa a capacidade registrada.
func (t *Tracker) TiltSupported() bool { return t.tiltSupported }

// Pointer retorna o último deslocamento do ponteiro.
func (t *Tracker) Pointer() Sample { return t.pointer }

// LastTilt retorna a última inclinação recebida.
func (t *Tracker) LastTilt() Sample { return t.tilt }

// RotationTarget deriva a rotação alvo da cena.
// A inclinação tem prioridade quando suportada e já observada.
func (t *Tracker) RotationTarget() Rotation {
	if t.tiltSupported && t.tiltSeen {
		return Rotation{
			Yaw:   t.tilt.X / t.tiltDivisor,
			Pitch: t.tilt.Y / t.tiltDivisor,
		}
	}
	return Rotation{
		Yaw:   t.pointer.X / t.pointerDivisor,
		Pitch: t.pointer.Y / t.pointerDivisor,
	}
}
