// Package anim anima propriedades float32 ao longo do tempo.
//
// Cada tween lê o valor inicial da propriedade no instante em que começa
// (depois do atraso), como os tweens "to" de bibliotecas de animação web.
// Um novo tween para a mesma propriedade substitui o anterior.
package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Curvas nomeadas usadas pela cena.
var (
	Power1Out   ease.TweenFunc = ease.OutQuad
	Power3Out   ease.TweenFunc = ease.OutCubic
	Power3InOut ease.TweenFunc = ease.InOutCubic
)

// Tween anima um único alvo até To.
type Tween struct {
	target   *float32
	to       float32
	duration float32
	easing   ease.TweenFunc

	wait float32 // atraso restante
	tw   *gween.Tween
}

// Started informa se o atraso já passou.
func (t *Tween) Started() bool { return t.tw != nil }

// advance avança dt segundos. Retorna true quando terminou.
func (t *Tween) advance(dt float32) bool {
	if t.tw == nil {
		if t.wait > dt {
			t.wait -= dt
			return false
		}
		dt -= t.wait
		t.wait = 0
		if t.duration <= 0 {
			*t.target = t.to
			return true
		}
		t.tw = gween.New(*t.target, t.to, t.duration, t.easing)
	}

	current, done := t.tw.Update(dt)
	*t.target = current
	return done
}

// Timeline guarda os tweens ativos, indexados pela propriedade animada.
type Timeline struct {
	tweens map[*float32]*Tween
	order  []*float32 // ordem de inserção para atualização determinística
}

// NewTimeline cria uma timeline vazia.
func NewTimeline() *Timeline {
	return &Timeline{tweens: make(map[*float32]*Tween)}
}

// To agenda a animação de target até to em duration segundos, começando após delay.
// Um tween existente para target é descartado.
func (tl *Timeline) To(target *float32, to, duration, delay float32, easing ease.TweenFunc) *Tween {
	if easing == nil {
		easing = Power1Out
	}
	tw := &Tween{
		target:   target,
		to:       to,
		duration: duration,
		easing:   easing,
		wait:     delay,
	}

	if _, ok := tl.tweens[target]; !ok {
		tl.order = append(tl.order, target)
	}
	tl.tweens[target] = tw

	if duration <= 0 && delay <= 0 {
		*target = to
		tl.remove(target)
	}
	return tw
}

// Update avança todos os tweens em dt segundos e remove os que terminaram.
func (tl *Timeline) Update(dt float32) {
	if dt < 0 {
		return
	}
	finished := tl.order[:0:0]
	for _, target := range tl.order {
		if tl.tweens[target].advance(dt) {
			finished = append(finished, target)
		}
	}
	for _, target := range finished {
		tl.remove(target)
	}
}

// Active retorna quantos tweens ainda estão rodando ou esperando.
func (tl *Timeline) Active() int {
	return len(tl.tweens)
}

// Has informa se existe tween ativo para target.
func (tl *Timeline) Has(target *float32) bool {
	_, ok := tl.tweens[target]
	return ok
}

func (tl *Timeline) remove(target *float32) {
	delete(tl.tweens, target)
	for i, t := range tl.order {
		if t == target {
			tl.order = append(tl.order[:i], tl.order[i+1:]...)
			return
		}
	}
}
