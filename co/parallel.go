// Copyright (c) 2025 The Starkbal developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"runtime"
	"sync"
)

// Goes to run and manage life-cycle of go routines.
type Goes struct {
	wg sync.WaitGroup
}

// Go run f in go routine.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait wait for all go routines started by 'Go' done.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done return the done channel for exiting of all go routines.
func (g *Goes) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.wg.Wait()
	}()
	return done
}

// Parallel to run a batch of work using as many CPU as it can.
// Work functions are queued via the passed channel; the returned
// channel is closed when all queued work has finished.
func Parallel(cb func(queue chan<- func())) <-chan struct{} {
	var goes Goes
	ch := make(chan func(), runtime.NumCPU()*2)
	for range runtime.NumCPU() {
		goes.Go(func() {
			for work := range ch {
				work()
			}
		})
	}
	go func() {
		defer close(ch)
		cb(ch)
	}()
	return goes.Done()
}
