/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package cpumem

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"naive.systems/depbase/cruleslib/basic"
)

// Budget hands out cpus and KB of memory to concurrent tasks. Acquire
// blocks until the requested amount is free.
type Budget struct {
	lock      sync.Mutex
	cond      *sync.Cond
	remainCpu int
	remainMem int
	totalCpu  int
	totalMem  int
}

func New(cpu, mem int) *Budget {
	b := &Budget{
		remainCpu: cpu,
		remainMem: mem,
		totalCpu:  cpu,
		totalMem:  mem,
	}
	b.cond = sync.NewCond(&b.lock)
	return b
}

func (b *Budget) Acquire(cpu, mem int, taskName string) error {
	cpuExceedMessage := ""
	memExceedMessage := ""
	if cpu > b.totalCpu {
		cpuExceedMessage = fmt.Sprintf("%s aquired %d cpus, but total %d cpus available\n", taskName, cpu, b.totalCpu)
	}
	if mem > b.totalMem {
		memExceedMessage = fmt.Sprintf("%s aquired %d KB memory, but total %d KB memory available\n", taskName, mem, b.totalMem)
	}
	if cpuExceedMessage+memExceedMessage != "" {
		return fmt.Errorf("%s", cpuExceedMessage+memExceedMessage)
	}
	start := time.Now()
	b.lock.Lock()
	for b.remainCpu < cpu || b.remainMem < mem {
		b.cond.Wait()
	}
	b.remainCpu -= cpu
	b.remainMem -= mem
	b.lock.Unlock()
	glog.Infof("%s waited for [%s] to acquire resources", taskName, basic.FormatTimeDuration(time.Since(start)))
	return nil
}

func (b *Budget) Release(cpu, mem int) {
	b.lock.Lock()
	b.remainCpu += cpu
	b.remainMem += mem
	b.lock.Unlock()
	b.cond.Broadcast()
}
