/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/
package main

import "github.com/mirrorkit/framerfix/cmd"

func main() {
	cmd.Execute()
}
