/*
Command thaiseg segments Thai text into words.

Called without a sub-command, thaiseg runs a demo: it segments the sentence
"ฉันบอกว่าฉันทำอย่างนั้นไม่ได้" with the engines newmm and attacut and
prints the results.

	thaiseg                          # demo
	thaiseg tokenize [text...]       # segment text from arguments or stdin
	thaiseg files 'corpus/*.txt'     # segment files into .tok files
	thaiseg doctor                   # check the environment
	thaiseg config init              # write a thaiseg.yaml with defaults

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/thaiseg/tokenize"
)

func main() {
	err := NewRootCmd().Execute()
	tokenize.Close()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
